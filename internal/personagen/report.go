package personagen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/persona-engine/internal/persona"
)

func BuildResponse(result PipelineResult) ResponseEnvelope {
	return ResponseEnvelope{
		PersonaID:        result.Persona.PersonaID,
		Persona:          result.Persona,
		Narrative:        result.Sociology.Narrative,
		ReportMarkdown:   buildMarkdown(result),
		PipelineMetadata: result.Metadata,
	}
}

func buildMarkdown(result PipelineResult) string {
	rec := result.Persona
	var b strings.Builder
	fmt.Fprintf(&b, "# Persona Dossier\n\n")
	fmt.Fprintf(&b, "- Persona ID: %s\n", rec.PersonaID)
	fmt.Fprintf(&b, "- Origin: %s\n", rec.Origin.Source)
	fmt.Fprintf(&b, "- Date: %s\n\n", time.Now().Format(time.RFC3339))
	if result.Metadata.Degraded {
		fmt.Fprintf(&b, "> Generated in degraded mode: %s\n\n", result.Metadata.DegradedReason)
	}

	fmt.Fprintf(&b, "## Who They Are\n\n")
	fmt.Fprintf(&b, "%s\n\n", sanitizeLine(result.Sociology.Narrative))

	fmt.Fprintf(&b, "## Economic Reality\n\n")
	fmt.Fprintf(&b, "- Monetary class: `%s`\n", rec.ContextProfile.MonetaryClass)
	fmt.Fprintf(&b, "- Geography: `%s`, household: `%s`\n", rec.ContextProfile.GeoID, rec.ContextProfile.HouseholdID)
	fmt.Fprintf(&b, "- Money rules: %s\n", sanitizeLine(rec.Constraints.Money))
	fmt.Fprintf(&b, "- Time rules: %s\n\n", sanitizeLine(rec.Constraints.Time))

	check := rec.Origin.RealityCheck
	if check != nil {
		fmt.Fprintf(&b, "## Reality Check\n\n")
		fmt.Fprintf(&b, "- Coherence: `%s`\n", check.CoherenceLevel)
		if check.RealityGapDescription != "" {
			fmt.Fprintf(&b, "- Gap: %s\n", sanitizeLine(check.RealityGapDescription))
		}
		fmt.Fprintf(&b, "- Spending logic: %s\n", sanitizeLine(check.CorrectionRules.SpendingLogic))
		if st := check.SocialTension; st != nil {
			fmt.Fprintf(&b, "- Money arrives as `%s`; face score %d/100; coping via `%s`\n", st.MoneyType, st.FaceScore, st.CopingStrategy)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Personality\n\n")
	appendDimension(&b, "Planning vs spontaneous", rec.Personality.PlanningVsSpontaneous)
	appendDimension(&b, "Risk tolerance", rec.Personality.RiskTolerance)
	appendDimension(&b, "Price sensitivity", rec.Personality.PriceSensitivity)
	appendDimension(&b, "Novelty seeking", rec.Personality.NoveltySeeking)
	appendDimension(&b, "Social influence", rec.Personality.SocialInfluence)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Behavior\n\n")
	fmt.Fprintf(&b, "- Visits %d times/week, average session depth %d\n", rec.BehavioralPattern.VisitFrequencyPerWeek, rec.BehavioralPattern.AvgSessionDepth)
	fmt.Fprintf(&b, "- Decision archetype: `%s`, spending vibe: `%s`\n", rec.BehavioralPattern.DecisionArchetype, rec.BehavioralPattern.SpendingVibe)
	if result.Metadata.TimeProfileID != "" {
		agreement := "unconfirmed"
		if result.Metadata.TimeProfileAgreement != nil {
			if *result.Metadata.TimeProfileAgreement {
				agreement = "consistent with the declared role"
			} else {
				agreement = "in tension with the declared role"
			}
		}
		fmt.Fprintf(&b, "- Observed hours match the `%s` time archetype (%s)\n", result.Metadata.TimeProfileID, agreement)
	}
	b.WriteString("\n")

	if len(rec.Motivations) > 0 {
		fmt.Fprintf(&b, "## Motivations\n\n")
		for _, m := range rec.Motivations {
			fmt.Fprintf(&b, "- %s\n", sanitizeLine(m))
		}
		b.WriteString("\n")
	}
	if len(rec.ContradictionsAndInsights) > 0 {
		fmt.Fprintf(&b, "## Contradictions and Insights\n\n")
		for _, c := range rec.ContradictionsAndInsights {
			fmt.Fprintf(&b, "- %s\n", sanitizeLine(c))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Voice\n\n")
	fmt.Fprintf(&b, "- Tone: %s\n", sanitizeLine(rec.InteractionStyle.Tone))
	fmt.Fprintf(&b, "- Speaking style: %s\n", sanitizeLine(rec.InteractionStyle.SpeakingStyle))
	if len(rec.InteractionStyle.CommonPhrases) > 0 {
		fmt.Fprintf(&b, "- Common phrases: %s\n", strings.Join(rec.InteractionStyle.CommonPhrases, " / "))
	}
	fmt.Fprintf(&b, "- Flaw: %s\n", sanitizeLine(rec.SystemState.Flaw))
	fmt.Fprintf(&b, "- Quadrant: `%s`\n\n", rec.SystemState.PsychologicalQuadrant)

	fmt.Fprintf(&b, "## Appendix\n\n")
	fmt.Fprintf(&b, "### Persona Record (JSON)\n\n```json\n%s\n```\n", prettyJSON(rec))
	fmt.Fprintf(&b, "\n### Pipeline Metadata (JSON)\n\n```json\n%s\n```\n", prettyJSON(result.Metadata))

	return b.String()
}

func appendDimension(b *strings.Builder, label string, d persona.Dimension) {
	fmt.Fprintf(b, "- %s: %d/100 (%s). %s\n", label, d.BaseScore, d.Level, sanitizeLine(d.Evidence))
	if d.ContextualShift != "" {
		fmt.Fprintf(b, "  - Shift: %s\n", sanitizeLine(d.ContextualShift))
	}
}

func sanitizeLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return string(b)
}
