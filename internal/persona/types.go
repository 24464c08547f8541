// Package persona defines the persona record schema and the normalization
// engine that repairs arbitrary generator output into it.
package persona

import "github.com/joelkehle/persona-engine/internal/sociology"

type OriginSource string

const (
	// SourceSynthetic marks lab-authored personas built from an explicit
	// skeleton; their declared income label is authoritative.
	SourceSynthetic OriginSource = "synthetic"
	// SourceUploaded marks personas distilled from observed behavioral
	// rows; their spending vibe outranks any declared income label.
	SourceUploaded OriginSource = "uploaded"
	SourceUnknown  OriginSource = "unknown"
)

type Origin struct {
	Source         OriginSource            `json:"source"`
	Shadow         string                  `json:"shadow,omitempty"`
	SkeletonIncome string                  `json:"skeleton_income,omitempty"`
	RealityCheck   *sociology.RealityCheck `json:"reality_check,omitempty"`
}

// Dimension is one personality axis. BaseScore is always an integer in
// [0,100] after normalization.
type Dimension struct {
	Level           string `json:"level"`
	BaseScore       int    `json:"base_score"`
	Evidence        string `json:"evidence"`
	ContextualShift string `json:"contextual_shift,omitempty"`
}

type Personality struct {
	PlanningVsSpontaneous Dimension `json:"planning_vs_spontaneous"`
	RiskTolerance         Dimension `json:"risk_tolerance"`
	PriceSensitivity      Dimension `json:"price_sensitivity"`
	NoveltySeeking        Dimension `json:"novelty_seeking"`
	SocialInfluence       Dimension `json:"social_influence"`
}

type BehavioralPattern struct {
	VisitFrequencyPerWeek int       `json:"visit_frequency_per_week"`
	AvgSessionDepth       int       `json:"avg_session_depth"`
	DecisionArchetype     string    `json:"decision_archetype"`
	SpendingVibe          string    `json:"spending_vibe"`
	HourlyActivity        []float64 `json:"hourly_activity,omitempty"`
}

type Constraints struct {
	Money     string `json:"money"`
	Time      string `json:"time"`
	Knowledge string `json:"knowledge"`
	Emotional string `json:"emotional"`
	Access    string `json:"access"`
}

type ContextProfile struct {
	MonetaryClass string `json:"monetary_class"`
	GeoID         string `json:"geo_id"`
	HouseholdID   string `json:"household_id"`
	Narrative     string `json:"narrative"`
}

type InteractionStyle struct {
	Tone          string   `json:"tone"`
	SpeakingStyle string   `json:"speaking_style"`
	CommonPhrases []string `json:"common_phrases"`
}

type SystemState struct {
	Flaw                  string `json:"flaw"`
	PsychologicalQuadrant string `json:"psychological_quadrant"`
}

// Record is the terminal persona aggregate. After normalization every
// container exists and every score is an integer in [0,100]; downstream
// consumers treat the record as immutable.
type Record struct {
	PersonaID                 string            `json:"persona_id"`
	Origin                    Origin            `json:"origin"`
	BehavioralPattern         BehavioralPattern `json:"behavioral_pattern"`
	Personality               Personality       `json:"personality"`
	Motivations               []string          `json:"motivations"`
	Constraints               Constraints       `json:"constraints"`
	ContradictionsAndInsights []string          `json:"contradictions_and_insights"`
	ContextProfile            ContextProfile    `json:"context_profile"`
	InteractionStyle          InteractionStyle  `json:"interaction_style"`
	SystemState               SystemState       `json:"system_state"`
}
