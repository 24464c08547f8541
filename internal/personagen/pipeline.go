package personagen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joelkehle/persona-engine/internal/persona"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

type StageProgressFn func(stage, message string)

type Pipeline struct {
	soc    *sociology.Engine
	tm     *timepattern.Matcher
	runner StageRunner
}

func NewPipeline(soc *sociology.Engine, tm *timepattern.Matcher, runner StageRunner) *Pipeline {
	return &Pipeline{soc: soc, tm: tm, runner: runner}
}

func (p *Pipeline) Run(ctx context.Context, req RequestEnvelope) (PipelineResult, error) {
	return p.runWithProgress(ctx, req, nil)
}

func (p *Pipeline) RunWithProgress(ctx context.Context, req RequestEnvelope, progress StageProgressFn) (PipelineResult, error) {
	return p.runWithProgress(ctx, req, progress)
}

// runWithProgress builds one persona. A draft-stage failure never fails the
// caller: the pipeline degrades to normalizing an empty draft, which still
// yields a schema-valid record grounded in the sociology context.
func (p *Pipeline) runWithProgress(ctx context.Context, req RequestEnvelope, progress StageProgressFn) (PipelineResult, error) {
	res := PipelineResult{
		Request:  req,
		Attempts: map[string]StageAttemptMetrics{},
		Metadata: PipelineMetadata{StartedAt: time.Now()},
	}

	if len(req.RoleText) > MaxRoleTextChars {
		req.RoleText = req.RoleText[:MaxRoleTextChars]
		res.Metadata.InputTruncated = true
	}
	if req.PersonaID == "" {
		req.PersonaID = uuid.NewString()
	}
	res.Request = req

	emit(progress, "sociology", "Resolving socio-economic context...")
	stageStarted := time.Now()
	res.Sociology = p.soc.Context(req.AgeRange, req.RoleText, req.IncomeLabel, req.Evidence, req.Overrides)
	emit(progress, "sociology", fmt.Sprintf("Sociology context resolved in %s", time.Since(stageStarted).Round(time.Millisecond)))
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "sociology")

	if len(req.HourlyActivity) == timepattern.HoursPerDay {
		emit(progress, "timepattern", "Matching observed hourly activity against archetypes...")
		res.TimeMatches = p.tm.PredictProfessionFromTime(req.HourlyActivity)
		if len(res.TimeMatches) > 0 {
			top := res.TimeMatches[0]
			res.Metadata.TimeProfileID = top.Profile.ID
			agreement := profileAgreesWithLabor(top.Profile.ID, res.Sociology.Resolved.Coordinates.LaborMode)
			res.Metadata.TimeProfileAgreement = &agreement
		}
		res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "timepattern")
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	emit(progress, "draft", "Drafting persona with the generator...")
	stageStarted = time.Now()
	draft, m, err := p.runner.RunDraft(ctx, req, res.Sociology)
	res.Attempts["draft"] = m
	if err != nil {
		emit(progress, "draft", fmt.Sprintf("Draft stage failed (%v); continuing degraded", err))
		res.Metadata.Degraded = true
		res.Metadata.DegradedReason = err.Error()
		draft = map[string]any{}
	} else {
		emit(progress, "draft", fmt.Sprintf("Draft complete in %s", time.Since(stageStarted).Round(time.Millisecond)))
	}
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "draft")

	stampOrigin(draft, req)

	emit(progress, "normalize", "Normalizing draft into the persona schema...")
	res.Persona = persona.SanitizeAndNormalize(draft, &res.Sociology)
	res.Persona.PersonaID = req.PersonaID
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "normalize")

	return p.finalize(res), nil
}

// stampOrigin makes the request authoritative over whatever provenance the
// generator hallucinated, and carries observed hourly activity into the
// draft when the generator omitted it.
func stampOrigin(draft map[string]any, req RequestEnvelope) {
	origin, ok := draft["origin"].(map[string]any)
	if !ok {
		origin = map[string]any{}
		draft["origin"] = origin
	}
	origin["source"] = req.Source
	origin["shadow"] = req.Shadow
	if req.IncomeLabel != "" {
		origin["skeleton_income"] = req.IncomeLabel
	}

	if len(req.HourlyActivity) != timepattern.HoursPerDay {
		return
	}
	bp, ok := draft["behavioral_pattern"].(map[string]any)
	if !ok {
		bp = map[string]any{}
		draft["behavioral_pattern"] = bp
	}
	if _, exists := bp["hourly_activity"]; !exists {
		hours := make([]any, len(req.HourlyActivity))
		for i, v := range req.HourlyActivity {
			hours[i] = v
		}
		bp["hourly_activity"] = hours
	}
}

var profileLabor = map[string]refdata.LaborMode{
	"office_worker":       refdata.LaborStandard,
	"night_shift":         refdata.LaborShift,
	"student_campus":      refdata.LaborStudent,
	"freelancer_creative": refdata.LaborGig,
	"shop_owner":          refdata.LaborOwner,
	"gig_driver":          refdata.LaborGig,
	"retiree":             refdata.LaborRetired,
}

func profileAgreesWithLabor(profileID string, labor refdata.LaborMode) bool {
	want, ok := profileLabor[profileID]
	return ok && want == labor
}

func emit(progress StageProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}

func (p *Pipeline) finalize(res PipelineResult) PipelineResult {
	res.Metadata.CompletedAt = time.Now()
	res.Metadata.StageAttempts = map[string]int{}
	res.Metadata.StageContentRetries = map[string]int{}
	for stage, m := range res.Attempts {
		res.Metadata.TotalLLMCalls += m.Attempts
		if m.Attempts > 1 {
			res.Metadata.TotalRetries += m.Attempts - 1
		}
		res.Metadata.StageAttempts[stage] = m.Attempts
		res.Metadata.StageContentRetries[stage] = m.ContentRetries
	}
	return res
}
