package personagen

import (
	"context"
	"fmt"
	"strings"

	"github.com/joelkehle/persona-engine/internal/sociology"
)

const draftSchemaPrompt = `Required JSON schema:
{
  "origin": {"source": "synthetic | uploaded", "shadow": "string or empty", "skeleton_income": "Survival | Tight | Stable | Affluent | Elite"},
  "behavioral_pattern": {
    "visit_frequency_per_week": "integer (0-50)",
    "avg_session_depth": "integer (0-50)",
    "decision_archetype": "string",
    "spending_vibe": "frugal | careful | steady | comfortable | splurge | scraping",
    "hourly_activity": ["float (exactly 24 entries, each 0.0-1.0)"]
  },
  "personality": {
    "planning_vs_spontaneous": {"base_score": "integer (0-100)", "evidence": "string (min 10 chars)"},
    "risk_tolerance": {"base_score": "integer (0-100)", "evidence": "string (min 10 chars)"},
    "price_sensitivity": {"base_score": "integer (0-100)", "evidence": "string (min 10 chars)"},
    "novelty_seeking": {"base_score": "integer (0-100)", "evidence": "string (min 10 chars)"},
    "social_influence": {"base_score": "integer (0-100)", "evidence": "string (min 10 chars)"}
  },
  "motivations": ["string (2-6 entries)"],
  "constraints": {"money": "string", "time": "string", "knowledge": "string", "emotional": "string", "access": "string"},
  "contradictions_and_insights": ["string (1-4 entries)"],
  "interaction_style": {"tone": "string", "speaking_style": "string", "common_phrases": ["string (2-5 entries, colloquial Taiwanese Mandarin)"]},
  "system_state": {"flaw": "string", "psychological_quadrant": "string"}
}`

type StageRunner interface {
	RunDraft(ctx context.Context, req RequestEnvelope, soc sociology.Context) (map[string]any, StageAttemptMetrics, error)
}

type LLMStageRunner struct {
	exec *StageExecutor
}

func NewLLMStageRunner(exec *StageExecutor) *LLMStageRunner {
	return &LLMStageRunner{exec: exec}
}

func (r *LLMStageRunner) RunDraft(ctx context.Context, req RequestEnvelope, soc sociology.Context) (map[string]any, StageAttemptMetrics, error) {
	out := map[string]any{}
	prompt := fmt.Sprintf(
		"Draft one consumer persona.\n%s\n\nAge range: %s\nDeclared role: %s\n\nSocio-economic grounding (authoritative, do not contradict):\n%s\n\nMoney rules: %s\nTime rules: %s\nSpending logic: %s",
		draftSchemaPrompt,
		req.AgeRange,
		req.RoleText,
		soc.Narrative,
		soc.Constraints.MoneyRules,
		soc.Constraints.TimeRules,
		soc.RealityCheck.CorrectionRules.SpendingLogic,
	)
	m, err := r.exec.Run(ctx, "draft", prompt, &out, func() error { return validateDraft(out) })
	return out, m, err
}

// validateDraft asks only for the skeleton the normalizer cannot invent:
// everything numeric or missing gets repaired downstream, but a draft with
// no personality and no behavioral pattern carries no signal worth keeping.
func validateDraft(m map[string]any) error {
	if len(m) == 0 {
		return fmt.Errorf("draft is empty")
	}
	pers, ok := m["personality"].(map[string]any)
	if !ok || len(pers) == 0 {
		return fmt.Errorf("personality object missing")
	}
	if _, ok := m["behavioral_pattern"].(map[string]any); !ok {
		return fmt.Errorf("behavioral_pattern object missing")
	}
	style, ok := m["interaction_style"].(map[string]any)
	if !ok {
		return fmt.Errorf("interaction_style object missing")
	}
	if tone, _ := style["tone"].(string); strings.TrimSpace(tone) == "" {
		return fmt.Errorf("interaction_style.tone missing")
	}
	return nil
}
