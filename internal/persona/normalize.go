package persona

import (
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/joelkehle/persona-engine/internal/sociology"
)

// SanitizeAndNormalizeJSON repairs raw generator bytes into a schema-valid
// record. Unparseable input degrades to an empty draft; it never returns an
// error.
func SanitizeAndNormalizeJSON(data []byte, soc *sociology.Context) Record {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("persona: unparseable generator output, normalizing empty draft: %v", err)
		m = map[string]any{}
	}
	return SanitizeAndNormalize(m, soc)
}

// SanitizeAndNormalize runs the four repair phases: structural repair,
// numeric normalization, self-healing inference, integrity check. The
// pipeline is idempotent: normalizing an already-normalized record is a
// no-op.
func SanitizeAndNormalize(raw map[string]any, soc *sociology.Context) Record {
	m := structuralRepair(raw)
	rec := buildRecord(m)
	heal(&rec, soc)
	finalize(&rec)
	return rec
}

// structuralRepair deep-copies the input, guarantees every required
// container exists with the expected shape, and migrates known legacy field
// layouts into their canonical locations.
func structuralRepair(raw map[string]any) map[string]any {
	m := deepCopy(raw)

	// Legacy rename: early generators emitted personality_dimensions.
	if _, ok := asMap(m["personality"]); !ok {
		if legacy, ok := asMap(m["personality_dimensions"]); ok {
			m["personality"] = legacy
		}
	}

	for _, key := range []string{"origin", "behavioral_pattern", "personality", "constraints", "context_profile", "interaction_style", "system_state"} {
		if _, ok := asMap(m[key]); !ok {
			m[key] = map[string]any{}
		}
	}
	for _, key := range []string{"motivations", "contradictions_and_insights"} {
		if _, ok := m[key].([]any); !ok {
			m[key] = []any{}
		}
	}

	// Legacy flattened metrics migrate into behavioral_pattern.
	if metrics, ok := asMap(m["metrics"]); ok {
		bp := m["behavioral_pattern"].(map[string]any)
		migrate := map[string]string{
			"visit_frequency": "visit_frequency_per_week",
			"session_depth":   "avg_session_depth",
			"spending_vibe":   "spending_vibe",
		}
		for from, to := range migrate {
			if v, ok := metrics[from]; ok {
				if _, exists := bp[to]; !exists {
					bp[to] = v
				}
			}
		}
		delete(m, "metrics")
	}

	// Legacy root-level tone.
	if tone, ok := m["tone"].(string); ok {
		style := m["interaction_style"].(map[string]any)
		if _, exists := style["tone"]; !exists {
			style["tone"] = tone
		}
		delete(m, "tone")
	}

	return m
}

func deepCopy(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		log.Printf("persona: input not serializable, starting from empty draft: %v", err)
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// NormalizeScore coerces any score-like value to an integer in [0,100].
// Non-numeric input becomes 0; values in (0,1] are ratios scaled x100;
// everything else rounds to the nearest integer and clamps. The result is
// never exactly 1: a stored 1 would be re-read as a ratio on the next pass,
// so it flushes to the zero noise floor.
func NormalizeScore(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > 0 && f <= 1 {
		f *= 100
	}
	n := int(math.Round(f))
	switch {
	case n <= 1:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}

// asCount coerces count-like fields (visits, depth) without the ratio
// scaling that score fields get.
func asCount(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Round(f))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// buildRecord lifts the repaired map into the typed record, field by field,
// normalizing every numeric leaf on the way in.
func buildRecord(m map[string]any) Record {
	origin := mustMap(m, "origin")
	bp := mustMap(m, "behavioral_pattern")
	pers := mustMap(m, "personality")
	cons := mustMap(m, "constraints")
	ctxp := mustMap(m, "context_profile")
	style := mustMap(m, "interaction_style")
	state := mustMap(m, "system_state")

	rec := Record{
		PersonaID: asString(m["persona_id"]),
		Origin: Origin{
			Source:         parseSource(asString(origin["source"])),
			Shadow:         strings.ToLower(strings.TrimSpace(asString(origin["shadow"]))),
			SkeletonIncome: asString(origin["skeleton_income"]),
			RealityCheck:   decodeRealityCheck(origin["reality_check"]),
		},
		BehavioralPattern: BehavioralPattern{
			VisitFrequencyPerWeek: asCount(bp["visit_frequency_per_week"]),
			AvgSessionDepth:       asCount(bp["avg_session_depth"]),
			DecisionArchetype:     asString(bp["decision_archetype"]),
			SpendingVibe:          strings.ToLower(strings.TrimSpace(asString(bp["spending_vibe"]))),
			HourlyActivity:        asFloatSlice(bp["hourly_activity"]),
		},
		Personality: Personality{
			PlanningVsSpontaneous: dimFrom(pers["planning_vs_spontaneous"]),
			RiskTolerance:         dimFrom(pers["risk_tolerance"]),
			PriceSensitivity:      dimFrom(pers["price_sensitivity"]),
			NoveltySeeking:        dimFrom(pers["novelty_seeking"]),
			SocialInfluence:       dimFrom(pers["social_influence"]),
		},
		Motivations: asStringSlice(m["motivations"]),
		Constraints: Constraints{
			Money:     asString(cons["money"]),
			Time:      asString(cons["time"]),
			Knowledge: asString(cons["knowledge"]),
			Emotional: asString(cons["emotional"]),
			Access:    asString(cons["access"]),
		},
		ContradictionsAndInsights: asStringSlice(m["contradictions_and_insights"]),
		ContextProfile: ContextProfile{
			MonetaryClass: asString(ctxp["monetary_class"]),
			GeoID:         asString(ctxp["geo_id"]),
			HouseholdID:   asString(ctxp["household_id"]),
			Narrative:     asString(ctxp["narrative"]),
		},
		InteractionStyle: InteractionStyle{
			Tone:          asString(style["tone"]),
			SpeakingStyle: asString(style["speaking_style"]),
			CommonPhrases: asStringSlice(style["common_phrases"]),
		},
		SystemState: SystemState{
			Flaw:                  asString(state["flaw"]),
			PsychologicalQuadrant: asString(state["psychological_quadrant"]),
		},
	}
	return rec
}

// finalize is the integrity pass: every required leaf ends up with a
// concrete value and every score inside [0,100].
func finalize(rec *Record) {
	dims := []*Dimension{
		&rec.Personality.PlanningVsSpontaneous,
		&rec.Personality.RiskTolerance,
		&rec.Personality.PriceSensitivity,
		&rec.Personality.NoveltySeeking,
		&rec.Personality.SocialInfluence,
	}
	for _, d := range dims {
		if d.BaseScore < 0 {
			d.BaseScore = 0
		}
		if d.BaseScore > 100 {
			d.BaseScore = 100
		}
		if strings.TrimSpace(d.Level) == "" {
			d.Level = levelFor(d.BaseScore)
		}
		if strings.TrimSpace(d.Evidence) == "" {
			d.Evidence = "insufficient signal"
		}
	}
	if rec.Motivations == nil {
		rec.Motivations = []string{}
	}
	if rec.ContradictionsAndInsights == nil {
		rec.ContradictionsAndInsights = []string{}
	}
	if rec.InteractionStyle.CommonPhrases == nil {
		rec.InteractionStyle.CommonPhrases = []string{}
	}
	if rec.Origin.Source == "" {
		rec.Origin.Source = SourceUnknown
	}
}

func levelFor(score int) string {
	switch {
	case score >= 70:
		return "High"
	case score >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

func dimFrom(v any) Dimension {
	if m, ok := asMap(v); ok {
		return Dimension{
			Level:           asString(m["level"]),
			BaseScore:       NormalizeScore(m["base_score"]),
			Evidence:        asString(m["evidence"]),
			ContextualShift: asString(m["contextual_shift"]),
		}
	}
	// Bare numbers are accepted as a score-only dimension.
	if _, ok := toFloat(v); ok {
		return Dimension{BaseScore: NormalizeScore(v)}
	}
	return Dimension{}
}

func decodeRealityCheck(v any) *sociology.RealityCheck {
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var rc sociology.RealityCheck
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil
	}
	if rc.CoherenceLevel == "" {
		return nil
	}
	return &rc
}

func parseSource(s string) OriginSource {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "synthetic", "lab", "skeleton":
		return SourceSynthetic
	case "uploaded", "observed", "csv":
		return SourceUploaded
	case "":
		return ""
	default:
		return SourceUnknown
	}
}

func mustMap(m map[string]any, key string) map[string]any {
	if sub, ok := asMap(m[key]); ok {
		return sub
	}
	return map[string]any{}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			out := make([]string, 0, len(ss))
			return append(out, ss...)
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func asFloatSlice(v any) []float64 {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		if f, ok := toFloat(it); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			out = append(out, f)
		}
	}
	if len(out) != len(items) {
		return nil
	}
	return out
}
