package persona

import (
	"strings"
	"testing"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
)

func socContext(t *testing.T, ageRange, role, income string) *sociology.Context {
	t.Helper()
	ds, err := refdata.Load()
	if err != nil {
		t.Fatalf("load refdata: %v", err)
	}
	e := sociology.NewEngine(ds, lexicon.New(ds), econ.New(ds))
	ctx := e.Context(ageRange, role, income, nil, nil)
	return &ctx
}

func TestImpulseShadowForcesPlanningScore(t *testing.T) {
	for _, rawScore := range []any{0.1, 20, 85, 99} {
		raw := map[string]any{
			"origin": map[string]any{"source": "synthetic", "shadow": "impulse"},
			"personality": map[string]any{
				"planning_vs_spontaneous": map[string]any{"base_score": rawScore},
			},
		}
		rec := SanitizeAndNormalize(raw, nil)
		got := rec.Personality.PlanningVsSpontaneous.BaseScore
		if got < 75 {
			t.Fatalf("impulse shadow with raw score %v left planning at %d, want >= 75", rawScore, got)
		}
		if rec.Personality.PlanningVsSpontaneous.Level != "High" {
			t.Fatalf("forced extreme must read High, got %q", rec.Personality.PlanningVsSpontaneous.Level)
		}
	}
}

func TestParalysisShadowCapsRiskTolerance(t *testing.T) {
	raw := map[string]any{
		"origin": map[string]any{"source": "synthetic", "shadow": "paralysis"},
		"personality": map[string]any{
			"risk_tolerance": map[string]any{"base_score": 70},
		},
	}
	rec := SanitizeAndNormalize(raw, nil)
	if got := rec.Personality.RiskTolerance.BaseScore; got > 15 {
		t.Fatalf("paralysis shadow left risk tolerance at %d, want <= 15", got)
	}
}

func TestShadowIgnoredForUploadedOrigin(t *testing.T) {
	raw := map[string]any{
		"origin": map[string]any{"source": "uploaded", "shadow": "impulse"},
		"personality": map[string]any{
			"planning_vs_spontaneous": map[string]any{"base_score": 20},
		},
	}
	rec := SanitizeAndNormalize(raw, nil)
	if got := rec.Personality.PlanningVsSpontaneous.BaseScore; got != 20 {
		t.Fatalf("shadow must only bind synthetic personas, score moved to %d", got)
	}
}

func TestUnknownShadowIsANoOp(t *testing.T) {
	raw := map[string]any{
		"origin": map[string]any{"source": "synthetic", "shadow": "werewolf"},
		"personality": map[string]any{
			"risk_tolerance": map[string]any{"base_score": 50},
		},
	}
	rec := SanitizeAndNormalize(raw, nil)
	if got := rec.Personality.RiskTolerance.BaseScore; got != 50 {
		t.Fatalf("unknown shadow must not touch scores, got %d", got)
	}
}

func TestMonetaryClassAuthority(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		skeleton string
		vibe     string
		want     string
	}{
		{"synthetic skeleton wins over vibe", "synthetic", "Affluent", "broke", "Affluent"},
		{"uploaded vibe wins over skeleton", "uploaded", "Affluent", "broke", "Survival"},
		{"uploaded without vibe falls back", "uploaded", "Tight", "", "Tight"},
		{"unknown uses vibe when present", "", "Elite", "frugal", "Tight"},
		{"unknown without either defaults Stable", "", "", "", "Stable"},
	}
	for _, c := range cases {
		raw := map[string]any{
			"origin":             map[string]any{"source": c.source, "skeleton_income": c.skeleton},
			"behavioral_pattern": map[string]any{"spending_vibe": c.vibe},
		}
		rec := SanitizeAndNormalize(raw, nil)
		if rec.ContextProfile.MonetaryClass != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, rec.ContextProfile.MonetaryClass, c.want)
		}
	}
}

func TestDecisionArchetypeTable(t *testing.T) {
	cases := []struct {
		freq, depth float64
		want        string
	}{
		{5, 3, "Loyal"},
		{1, 8, "Researcher"},
		{1, 2, "Skimmer"},
		{2, 4, "Browser"},
	}
	for _, c := range cases {
		raw := map[string]any{
			"behavioral_pattern": map[string]any{
				"visit_frequency_per_week": c.freq,
				"avg_session_depth":        c.depth,
			},
		}
		rec := SanitizeAndNormalize(raw, nil)
		if rec.BehavioralPattern.DecisionArchetype != c.want {
			t.Fatalf("freq=%v depth=%v: got %q, want %q", c.freq, c.depth, rec.BehavioralPattern.DecisionArchetype, c.want)
		}
	}
}

func TestExplicitArchetypeSurvivesHealing(t *testing.T) {
	raw := map[string]any{
		"behavioral_pattern": map[string]any{
			"visit_frequency_per_week": 9,
			"decision_archetype":       "Bargain Hunter",
		},
	}
	rec := SanitizeAndNormalize(raw, nil)
	if rec.BehavioralPattern.DecisionArchetype != "Bargain Hunter" {
		t.Fatalf("explicit archetype was overwritten: %q", rec.BehavioralPattern.DecisionArchetype)
	}
}

func TestSociologyFillsGapsButNeverOverwrites(t *testing.T) {
	soc := socContext(t, "26-35", "軟體工程師", "Stable")
	raw := map[string]any{
		"constraints":     map[string]any{"money": "already written by the generator"},
		"context_profile": map[string]any{},
	}
	rec := SanitizeAndNormalize(raw, soc)

	if rec.Constraints.Money != "already written by the generator" {
		t.Fatalf("existing money constraint overwritten: %q", rec.Constraints.Money)
	}
	if rec.Constraints.Time == "" {
		t.Fatal("empty time constraint should be filled from sociology")
	}
	if rec.ContextProfile.Narrative != soc.Narrative {
		t.Fatal("empty narrative should be filled from sociology")
	}
	if rec.ContextProfile.GeoID != soc.Resolved.GeoID || rec.ContextProfile.HouseholdID != soc.Resolved.HouseholdID {
		t.Fatalf("geo/household not filled: %+v", rec.ContextProfile)
	}
	if rec.Origin.RealityCheck == nil {
		t.Fatal("reality check should be attached when missing")
	}
	if rec.Origin.RealityCheck.CoherenceLevel != soc.RealityCheck.CoherenceLevel {
		t.Fatalf("attached reality check diverged: %s", rec.Origin.RealityCheck.CoherenceLevel)
	}
}

func TestQuadrantFromFaceAndDisposable(t *testing.T) {
	// A Tight-tier owner carries a high face score with thin margins.
	anxious := socContext(t, "36-45", "老闆", "Tight")
	rec := SanitizeAndNormalize(map[string]any{}, anxious)
	q := rec.SystemState.PsychologicalQuadrant
	if q != "Anxious Performer" && q != "Status Curator" {
		t.Fatalf("high-face persona landed in %q", q)
	}

	// An affluent engineer keeps face low and margins wide.
	quiet := socContext(t, "26-35", "軟體工程師", "Affluent")
	rec = SanitizeAndNormalize(map[string]any{}, quiet)
	if rec.SystemState.PsychologicalQuadrant != "Quiet Optimizer" {
		t.Fatalf("low-face moneyed persona landed in %q", rec.SystemState.PsychologicalQuadrant)
	}
}

func TestHealedFlawFromExtremes(t *testing.T) {
	raw := map[string]any{
		"personality": map[string]any{
			"price_sensitivity": map[string]any{"base_score": 92},
		},
	}
	rec := SanitizeAndNormalize(raw, nil)
	if !strings.Contains(rec.SystemState.Flaw, "scarcity") {
		t.Fatalf("extreme price sensitivity should surface a scarcity flaw, got %q", rec.SystemState.Flaw)
	}
}
