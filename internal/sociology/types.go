package sociology

import "github.com/joelkehle/persona-engine/internal/refdata"

type CoherenceLevel string

const (
	CoherenceHigh       CoherenceLevel = "High"
	CoherenceMedium     CoherenceLevel = "Medium"
	CoherenceLow        CoherenceLevel = "Low"
	CoherenceDelusional CoherenceLevel = "Delusional"
	CoherenceAnomaly    CoherenceLevel = "Anomaly"
	CoherenceInsolvent  CoherenceLevel = "Insolvent"
	CoherenceParadox    CoherenceLevel = "Paradox"
)

type MoneyType string

const (
	MoneyCashFlow     MoneyType = "Cash_Flow"
	MoneyStableSalary MoneyType = "Stable_Salary"
	MoneyBloodSweat   MoneyType = "Blood_Sweat"
	MoneyPieceRate    MoneyType = "Piece_Rate"
	MoneyFixedPension MoneyType = "Fixed_Pension"
)

type CopingStrategy string

const (
	CopingInstallmentKing  CopingStrategy = "Installment_King"
	CopingStealthWealth    CopingStrategy = "Stealth_Wealth"
	CopingMomBank          CopingStrategy = "Mom_Bank"
	CopingCompensatory     CopingStrategy = "Compensatory_Consumption"
	CopingPragmaticBalance CopingStrategy = "Pragmatic_Balance"
)

type VanityLevel string

const (
	VanityLow    VanityLevel = "low"
	VanityMedium VanityLevel = "medium"
	VanityHigh   VanityLevel = "high"
)

type AgeBand string

const (
	AgeYoung  AgeBand = "young"
	AgeMiddle AgeBand = "middle"
	AgeSenior AgeBand = "senior"
)

// ObservedEvidence summarizes behavioral data used to cross-check a
// declared role/income against economic reality.
type ObservedEvidence struct {
	MaxObservedTransaction float64 `json:"max_observed_transaction"`
	TotalSpending30d       float64 `json:"total_spending_30d"`
}

// SocialTension captures the gap between how a persona earns money and the
// social display pressure it is under. JSON keys follow the persona record
// schema rather than Go convention.
type SocialTension struct {
	MoneyType         MoneyType      `json:"moneyType"`
	FaceScore         int            `json:"faceScore"`
	CopingStrategy    CopingStrategy `json:"copingStrategy"`
	NarrativeOverride string         `json:"narrativeOverride"`
}

type CorrectionRules struct {
	DisplayRole   string `json:"display_role"`
	SpendingLogic string `json:"spending_logic"`
}

// RealityCheck is produced once per persona build and attached to the
// persona's origin profile; only a re-run of the engine replaces it.
type RealityCheck struct {
	CoherenceLevel        CoherenceLevel  `json:"coherence_level"`
	RealityGapDescription string          `json:"reality_gap_description"`
	CorrectionRules       CorrectionRules `json:"correction_rules"`
	SocialTension         *SocialTension  `json:"social_tension,omitempty"`
}

type Constraints struct {
	MoneyRules string `json:"money_rules"`
	TimeRules  string `json:"time_rules"`
}

// Resolved exposes the intermediate economic resolution so downstream
// consumers (normalization, reports) do not recompute it.
type Resolved struct {
	Coordinates       refdata.Coordinates `json:"coordinates"`
	Term              string              `json:"term,omitempty"`
	Tier              refdata.IncomeTier  `json:"tier"`
	GeoID             string              `json:"geo_id"`
	HouseholdID       string              `json:"household_id"`
	GrossMonthly      int                 `json:"gross_monthly"`
	DisposableMonthly float64             `json:"disposable_monthly"`
	LexiconConfidence float64             `json:"lexicon_confidence"`
}

type Context struct {
	Narrative    string       `json:"narrative"`
	Constraints  Constraints  `json:"constraints"`
	RealityCheck RealityCheck `json:"reality_check"`
	Resolved     Resolved     `json:"resolved"`
}
