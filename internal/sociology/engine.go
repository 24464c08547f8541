// Package sociology composes the lexicon, the economic physics, and the
// reference datasets into a narrative, generation constraints, and a reality
// check for one persona. All decisions are deterministic rule lookups; there
// is no hidden state between calls.
package sociology

import (
	"fmt"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/refdata"
)

type Engine struct {
	ds   *refdata.Datasets
	lex  *lexicon.Matcher
	phys *econ.Physics
}

func NewEngine(ds *refdata.Datasets, lex *lexicon.Matcher, phys *econ.Physics) *Engine {
	return &Engine{ds: ds, lex: lex, phys: phys}
}

// Context builds the socio-economic context for a declared persona. It never
// returns an error: unrecognized roles degrade to neutral coordinates and
// the coherence level records any declared-vs-observed mismatch instead of
// failing.
func (e *Engine) Context(ageRange, roleText, incomeLabel string, evidence *ObservedEvidence, overrides *refdata.SociologyOverrides) Context {
	lexRes := e.lex.AnalyzeInput(roleText)

	geoID := refdata.DefaultGeoID
	householdID := refdata.DefaultHouseholdID
	householdForced := false
	if overrides != nil {
		if _, ok := e.ds.Geo[overrides.GeoID]; ok {
			geoID = overrides.GeoID
		}
		if _, ok := e.ds.Households[overrides.HouseholdID]; ok {
			householdID = overrides.HouseholdID
			householdForced = true
		}
	}
	geo := e.ds.GeoOrGeneral(geoID)
	household := e.ds.HouseholdOrDefault(householdID)

	tier := refdata.TierOrDefault(incomeLabel)
	if lexRes.Strategy == lexicon.StrategyEnforce && lexRes.Coordinates.Tier != "" {
		tier = lexRes.Coordinates.Tier
	}

	salaryKey := lexRes.SalaryKey
	if salaryKey == "" {
		salaryKey = refdata.DefaultSalaryKey
	}
	gross := e.ds.MonthlySalary(salaryKey, tier)
	homeOwner := tier == refdata.TierAffluent || tier == refdata.TierElite
	disposable := e.phys.TrueDisposableIncome(float64(gross), geoID, household.DiscretionaryFactor, homeOwner)

	coherence, gap := assessCoherence(lexRes, tier, float64(gross), disposable, evidence)
	tension := inferTension(lexRes.Coordinates, tier, ageBandFor(ageRange))

	displayRole := lexRes.Term
	if displayRole == "" {
		displayRole = roleText
	}
	check := RealityCheck{
		CoherenceLevel:        coherence,
		RealityGapDescription: gap,
		CorrectionRules: CorrectionRules{
			DisplayRole:   displayRole,
			SpendingLogic: spendingLogic(coherence, tension, disposable),
		},
		SocialTension: &tension,
	}

	resolved := Resolved{
		Coordinates:       lexRes.Coordinates,
		Term:              lexRes.Term,
		Tier:              tier,
		GeoID:             geoID,
		HouseholdID:       householdID,
		GrossMonthly:      gross,
		DisposableMonthly: disposable,
		LexiconConfidence: lexRes.Confidence,
	}

	return Context{
		Narrative:    buildNarrative(resolved, geo, household, householdForced, tension, coherence),
		Constraints:  buildConstraints(resolved, geo, tension),
		RealityCheck: check,
		Resolved:     resolved,
	}
}

func assessCoherence(lexRes lexicon.Result, tier refdata.IncomeTier, gross, disposable float64, ev *ObservedEvidence) (CoherenceLevel, string) {
	// Declared combinations that are internally impossible trump everything.
	if (lexRes.Coordinates.LaborMode == refdata.LaborStudent || lexRes.Coordinates.LaborMode == refdata.LaborRetired) && tier == refdata.TierElite {
		return CoherenceParadox, fmt.Sprintf("Declared %s labor cannot sit in the Elite income tier.", lexRes.Coordinates.LaborMode)
	}

	if ev != nil {
		switch {
		case ev.TotalSpending30d > gross && gross > 0:
			return CoherenceInsolvent, fmt.Sprintf("Observed 30-day spending NT$%.0f exceeds gross monthly income NT$%.0f.", ev.TotalSpending30d, gross)
		case disposable <= 0 && (ev.TotalSpending30d > 0 || ev.MaxObservedTransaction > 0):
			return CoherenceInsolvent, "Observed spending against non-positive disposable income."
		case ev.MaxObservedTransaction > 10*disposable && disposable > 0:
			return CoherenceAnomaly, fmt.Sprintf("Single transaction NT$%.0f is more than 10x monthly disposable income NT$%.0f.", ev.MaxObservedTransaction, disposable)
		case ev.MaxObservedTransaction > 3*disposable && disposable > 0 && (tier == refdata.TierSurvival || tier == refdata.TierTight):
			return CoherenceDelusional, fmt.Sprintf("Transactions up to NT$%.0f do not fit a %s-tier budget.", ev.MaxObservedTransaction, tier)
		}
	}

	if !lexRes.MatchFound {
		return CoherenceLow, "Occupation could not be resolved against the taxonomy; economic profile uses neutral defaults."
	}
	if lexRes.Confidence > 0.7 {
		return CoherenceHigh, ""
	}
	return CoherenceMedium, fmt.Sprintf("Occupation resolved with moderate confidence (%.2f); treat role-linked figures as approximate.", lexRes.Confidence)
}

func spendingLogic(coherence CoherenceLevel, tension SocialTension, disposable float64) string {
	switch coherence {
	case CoherenceInsolvent:
		return "Spending must be narrated as debt-financed; no purchase clears without friction."
	case CoherenceDelusional, CoherenceAnomaly:
		return fmt.Sprintf("Large purchases are aspiration, not budget; anchor every amount to NT$%.0f/month of real room.", disposable)
	case CoherenceParadox:
		return "Declared economics are contradictory; fall back to the inferred coordinates and ignore the declared tier."
	default:
		return fmt.Sprintf("Spending follows the %s pattern within NT$%.0f/month of discretionary room.", tension.CopingStrategy, disposable)
	}
}

func buildNarrative(r Resolved, geo refdata.GeoProfile, hh refdata.HouseholdProfile, hhForced bool, tension SocialTension, coherence CoherenceLevel) string {
	role := r.Term
	if role == "" {
		role = "未分類職業"
	}
	household := hh.Label
	if hhForced {
		household = hh.Label + " (forced)"
	}
	return fmt.Sprintf(
		"%s, %s tier, living in %s as part of a %s household. Gross NT$%d/month leaves NT$%.0f of true disposable income after the tax, housing, and family stack. Money arrives as %s; under social pressure (face %d/100) the coping pattern is %s. Coherence: %s.",
		role, r.Tier, geo.Label, household, r.GrossMonthly, r.DisposableMonthly,
		tension.MoneyType, tension.FaceScore, tension.CopingStrategy, coherence,
	)
}

func buildConstraints(r Resolved, geo refdata.GeoProfile, tension SocialTension) Constraints {
	midpointPrice := 0.3 * r.DisposableMonthly
	if midpointPrice < 0 {
		midpointPrice = 0
	}
	money := fmt.Sprintf(
		"Strategy %s: NT$%.0f/month truly disposable (survival floor NT$%d in %s). Resistance passes 50/100 once a monthly burden exceeds NT$%.0f. Face score %d means %s display pressure.",
		tension.CopingStrategy, r.DisposableMonthly, geo.SurvivalFloor, geo.Label, midpointPrice, tension.FaceScore, facePressure(tension.FaceScore),
	)
	return Constraints{
		MoneyRules: money,
		TimeRules:  timeRules(r.Coordinates.LaborMode),
	}
}

func facePressure(face int) string {
	switch {
	case face >= 70:
		return "high"
	case face >= 40:
		return "moderate"
	default:
		return "low"
	}
}

func timeRules(labor refdata.LaborMode) string {
	switch labor {
	case refdata.LaborShift:
		return "Rotating shifts: free hours cluster after shift end and flip week to week; decisions happen tired."
	case refdata.LaborOwner:
		return "The shop owns the clock: browsing happens in dead hours between customers, never in long sessions."
	case refdata.LaborGig:
		return "Time is revenue: off-peak lulls are the only browsing windows, and every idle hour has a visible cost."
	case refdata.LaborStudent:
		return "Class schedule plus late nights: long evening sessions, impulsive timing, weekday afternoons free."
	case refdata.LaborRetired:
		return "Early hours and long mornings; evenings wind down before 22:00."
	default:
		return "Standard office rhythm: lunch-break skims and post-20:00 deep sessions."
	}
}
