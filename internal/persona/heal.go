package persona

import (
	"log"
	"strings"

	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
)

// Generic sentinels that count as "not filled in" for self-healing purposes.
var genericSentinels = map[string]bool{
	"":        true,
	"none":    true,
	"unknown": true,
	"general": true,
	"default": true,
	"n/a":     true,
	"一般":      true,
}

func isGeneric(s string) bool {
	return genericSentinels[strings.ToLower(strings.TrimSpace(s))]
}

// heal is the self-healing phase: derived fields that are absent or generic
// get inferred from signals already present, shadow selections force their
// personality extreme, and the monetary class follows the origin-dependent
// authority policy.
func heal(rec *Record, soc *sociology.Context) {
	healDecisionArchetype(rec)
	healSpeakingStyle(rec)
	applyShadow(rec)
	healFlaw(rec)
	rec.ContextProfile.MonetaryClass = string(moneyAuthority(rec.Origin, rec.BehavioralPattern))
	applySociology(rec, soc)
}

func healDecisionArchetype(rec *Record) {
	if !isGeneric(rec.BehavioralPattern.DecisionArchetype) {
		return
	}
	bp := &rec.BehavioralPattern
	switch {
	case bp.VisitFrequencyPerWeek >= 4:
		bp.DecisionArchetype = "Loyal"
	case bp.AvgSessionDepth >= 7:
		bp.DecisionArchetype = "Researcher"
	case bp.AvgSessionDepth > 0 && bp.AvgSessionDepth <= 2:
		bp.DecisionArchetype = "Skimmer"
	default:
		bp.DecisionArchetype = "Browser"
	}
}

var cynicalTones = []string{"cynical", "sarcastic", "skeptical", "厭世", "懷疑", "冷淡"}
var enthusiasticTones = []string{"enthusiastic", "upbeat", "excited", "熱情", "興奮", "活潑"}

func healSpeakingStyle(rec *Record) {
	style := &rec.InteractionStyle
	tone := strings.ToLower(style.Tone)

	var speaking string
	var phrases []string
	switch {
	case containsAny(tone, cynicalTones):
		speaking = "terse, guarded"
		phrases = []string{"是喔", "再看看吧", "有差嗎"}
	case containsAny(tone, enthusiasticTones):
		speaking = "exclamatory, fast"
		phrases = []string{"太讚了吧!", "衝一波!", "真的假的!"}
	default:
		speaking = "neutral, conversational"
		phrases = []string{"好喔", "了解", "我再想一下"}
	}
	if isGeneric(style.SpeakingStyle) {
		style.SpeakingStyle = speaking
	}
	if len(style.CommonPhrases) == 0 {
		style.CommonPhrases = phrases
	}
}

// shadowForce pins one personality dimension to the extreme consistent with
// a lab-selected shadow, overriding conflicting generator output.
type shadowForce struct {
	dim func(*Personality) *Dimension
	// floor pushes the score up to at least this value; ceil caps it when
	// floor is 0.
	floor int
	ceil  int
	note  string
}

var shadowForces = map[string]shadowForce{
	"impulse": {
		dim:   func(p *Personality) *Dimension { return &p.PlanningVsSpontaneous },
		floor: 85,
		note:  "shadow: acts first, budgets later",
	},
	"paralysis": {
		dim:  func(p *Personality) *Dimension { return &p.RiskTolerance },
		ceil: 15,
		note: "shadow: every option feels like a trap",
	},
	"scarcity": {
		dim:   func(p *Personality) *Dimension { return &p.PriceSensitivity },
		floor: 85,
		note:  "shadow: every price is an insult",
	},
	"vanity": {
		dim:   func(p *Personality) *Dimension { return &p.SocialInfluence },
		floor: 85,
		note:  "shadow: the audience is always watching",
	},
}

func applyShadow(rec *Record) {
	if rec.Origin.Source != SourceSynthetic || rec.Origin.Shadow == "" {
		return
	}
	force, ok := shadowForces[rec.Origin.Shadow]
	if !ok {
		log.Printf("persona: unrecognized shadow %q, leaving scores untouched", rec.Origin.Shadow)
		return
	}
	d := force.dim(&rec.Personality)
	if force.floor > 0 && d.BaseScore < force.floor {
		d.BaseScore = force.floor
	}
	if force.floor == 0 && d.BaseScore > force.ceil {
		d.BaseScore = force.ceil
	}
	d.Level = levelFor(d.BaseScore)
	d.ContextualShift = force.note
}

func healFlaw(rec *Record) {
	if !isGeneric(rec.SystemState.Flaw) {
		return
	}
	p := rec.Personality
	switch {
	case p.PlanningVsSpontaneous.BaseScore >= 85:
		rec.SystemState.Flaw = "impulse control difficulty"
	case p.RiskTolerance.BaseScore <= 15 && p.RiskTolerance.Evidence != "":
		rec.SystemState.Flaw = "decision paralysis"
	case p.PriceSensitivity.BaseScore >= 85:
		rec.SystemState.Flaw = "scarcity anxiety"
	default:
		rec.SystemState.Flaw = "balanced"
	}
}

var vibeTiers = map[string]refdata.IncomeTier{
	"splurge":     refdata.TierAffluent,
	"luxury":      refdata.TierAffluent,
	"premium":     refdata.TierAffluent,
	"comfortable": refdata.TierStable,
	"steady":      refdata.TierStable,
	"frugal":      refdata.TierTight,
	"careful":     refdata.TierTight,
	"scraping":    refdata.TierSurvival,
	"broke":       refdata.TierSurvival,
}

// moneyAuthority picks which signal the monetary class trusts. Synthetic
// personas carry an explicit skeleton income label and it wins; uploaded
// personas are believed by their observed spending vibe; unknown origins
// use the vibe when one was observed and the skeleton label otherwise.
func moneyAuthority(o Origin, bp BehavioralPattern) refdata.IncomeTier {
	vibeTier, hasVibe := vibeTiers[bp.SpendingVibe]
	switch o.Source {
	case SourceSynthetic:
		return refdata.TierOrDefault(o.SkeletonIncome)
	case SourceUploaded:
		if hasVibe {
			return vibeTier
		}
		return refdata.TierOrDefault(o.SkeletonIncome)
	default:
		if hasVibe {
			return vibeTier
		}
		return refdata.TierOrDefault(o.SkeletonIncome)
	}
}

// applySociology layers sociology-derived defaults under whatever the
// generator already produced: existing values win, gaps get filled.
func applySociology(rec *Record, soc *sociology.Context) {
	if soc == nil {
		if rec.SystemState.PsychologicalQuadrant == "" {
			rec.SystemState.PsychologicalQuadrant = "Unprofiled"
		}
		return
	}
	if rec.Constraints.Money == "" {
		rec.Constraints.Money = soc.Constraints.MoneyRules
	}
	if rec.Constraints.Time == "" {
		rec.Constraints.Time = soc.Constraints.TimeRules
	}
	if rec.ContextProfile.Narrative == "" {
		rec.ContextProfile.Narrative = soc.Narrative
	}
	if rec.ContextProfile.GeoID == "" {
		rec.ContextProfile.GeoID = soc.Resolved.GeoID
	}
	if rec.ContextProfile.HouseholdID == "" {
		rec.ContextProfile.HouseholdID = soc.Resolved.HouseholdID
	}
	if rec.Origin.RealityCheck == nil {
		rc := soc.RealityCheck
		rec.Origin.RealityCheck = &rc
	}
	if rec.SystemState.PsychologicalQuadrant == "" {
		rec.SystemState.PsychologicalQuadrant = quadrantFor(soc)
	}
}

func quadrantFor(soc *sociology.Context) string {
	face := 0
	if st := soc.RealityCheck.SocialTension; st != nil {
		face = st.FaceScore
	}
	hasRoom := soc.Resolved.DisposableMonthly > 0
	switch {
	case face >= 60 && !hasRoom:
		return "Anxious Performer"
	case face >= 60 && hasRoom:
		return "Status Curator"
	case face < 60 && hasRoom:
		return "Quiet Optimizer"
	default:
		return "Survival Realist"
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
