package refdata

import (
	"fmt"
	"strings"
)

const (
	DefaultGeoID       = "general"
	DefaultHouseholdID = "single"
	DefaultSalaryKey   = "default"
)

// Datasets bundles every reference table behind one injected handle. Loaded
// once at startup and read-only afterwards.
type Datasets struct {
	Jobs         []JobDefinition
	TimeProfiles []TimeProfile
	Brackets     map[string]IncomeBracket
	Propensity   map[string]float64
	Geo          map[string]GeoProfile
	Households   map[string]HouseholdProfile
	SalaryCurves map[string]map[IncomeTier]int
	AmortClasses map[string]AmortClass
}

// Load assembles the built-in tables and cross-validates them. A validation
// failure here is a programming error in the tables and is the one condition
// in this core that propagates as an error.
func Load() (*Datasets, error) {
	ds := &Datasets{
		Jobs:         defaultJobs,
		TimeProfiles: defaultTimeProfiles,
		Brackets:     defaultIncomeBrackets,
		Propensity:   defaultConsumptionPropensity,
		Geo:          defaultGeoProfiles,
		Households:   defaultHouseholdProfiles,
		SalaryCurves: defaultSalaryCurves,
		AmortClasses: defaultAmortClasses,
	}
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	return ds, nil
}

func (ds *Datasets) validate() error {
	for _, j := range ds.Jobs {
		if strings.TrimSpace(j.Term) == "" {
			return fmt.Errorf("job with empty term")
		}
		if j.Weight < 0 || j.Weight > 1 {
			return fmt.Errorf("job %q: weight %v out of [0,1]", j.Term, j.Weight)
		}
		if _, ok := ds.SalaryCurves[j.SalaryKey]; !ok {
			return fmt.Errorf("job %q: unknown salary key %q", j.Term, j.SalaryKey)
		}
	}
	for _, p := range ds.TimeProfiles {
		for h, w := range p.HourlyWeights {
			if w < 0 || w > 100 {
				return fmt.Errorf("time profile %q: hour %d weight %v out of [0,100]", p.ID, h, w)
			}
		}
	}
	for age, b := range ds.Brackets {
		if !(b.P10 <= b.P25 && b.P25 <= b.Median && b.Median <= b.P75 && b.P75 <= b.P90 && b.P90 <= b.P99) {
			return fmt.Errorf("income bracket %q: percentiles not monotonic", age)
		}
	}
	for id, h := range ds.Households {
		if h.DiscretionaryFactor <= 0 || h.DiscretionaryFactor > 1 {
			return fmt.Errorf("household %q: discretionary factor %v out of (0,1]", id, h.DiscretionaryFactor)
		}
	}
	for _, key := range []string{DefaultGeoID} {
		if _, ok := ds.Geo[key]; !ok {
			return fmt.Errorf("missing geo profile %q", key)
		}
	}
	if _, ok := ds.Households[DefaultHouseholdID]; !ok {
		return fmt.Errorf("missing household profile %q", DefaultHouseholdID)
	}
	if _, ok := ds.SalaryCurves[DefaultSalaryKey]; !ok {
		return fmt.Errorf("missing salary curve %q", DefaultSalaryKey)
	}
	for key, curve := range ds.SalaryCurves {
		for _, tier := range []IncomeTier{TierSurvival, TierTight, TierStable, TierAffluent, TierElite} {
			if curve[tier] <= 0 {
				return fmt.Errorf("salary curve %q: missing tier %s", key, tier)
			}
		}
	}
	for id, c := range ds.AmortClasses {
		if c.BaseMonths < 1 {
			return fmt.Errorf("amort class %q: base months %d", id, c.BaseMonths)
		}
		if c.PainDiscount < 0 || c.PainDiscount >= 1 {
			return fmt.Errorf("amort class %q: pain discount %v out of [0,1)", id, c.PainDiscount)
		}
	}
	return nil
}

// GeoOrGeneral returns the profile for geoID, falling back to the national
// general profile when the region is unmapped.
func (ds *Datasets) GeoOrGeneral(geoID string) GeoProfile {
	if g, ok := ds.Geo[strings.TrimSpace(geoID)]; ok {
		return g
	}
	return ds.Geo[DefaultGeoID]
}

func (ds *Datasets) HouseholdOrDefault(id string) HouseholdProfile {
	if h, ok := ds.Households[strings.TrimSpace(id)]; ok {
		return h
	}
	return ds.Households[DefaultHouseholdID]
}

// MonthlySalary resolves a monthly gross salary for the key and tier,
// falling back to the default curve for unknown keys.
func (ds *Datasets) MonthlySalary(salaryKey string, tier IncomeTier) int {
	curve, ok := ds.SalaryCurves[salaryKey]
	if !ok {
		curve = ds.SalaryCurves[DefaultSalaryKey]
	}
	if v, ok := curve[tier]; ok {
		return v
	}
	return curve[TierStable]
}

// BracketForAge resolves an income bracket with the same matching ladder as
// consumption propensity: exact label, then substring either way.
func (ds *Datasets) BracketForAge(ageRange string) (IncomeBracket, bool) {
	age := strings.TrimSpace(ageRange)
	if b, ok := ds.Brackets[age]; ok {
		return b, true
	}
	for label, b := range ds.Brackets {
		if age != "" && (strings.Contains(age, label) || strings.Contains(label, age)) {
			return b, true
		}
	}
	return IncomeBracket{}, false
}

// NeutralCoordinates is what the lexicon resolves to when nothing matches.
func NeutralCoordinates() Coordinates {
	return Coordinates{LaborMode: LaborStandard, Sector: SectorGeneral}
}

// ValidTier reports whether the label is one of the five income tiers.
func ValidTier(t IncomeTier) bool {
	switch t {
	case TierSurvival, TierTight, TierStable, TierAffluent, TierElite:
		return true
	default:
		return false
	}
}

// TierOrDefault parses an income label tolerantly, defaulting to Stable.
func TierOrDefault(label string) IncomeTier {
	t := IncomeTier(strings.TrimSpace(label))
	if ValidTier(t) {
		return t
	}
	lower := strings.ToLower(string(t))
	for _, cand := range []IncomeTier{TierSurvival, TierTight, TierStable, TierAffluent, TierElite} {
		if strings.ToLower(string(cand)) == lower {
			return cand
		}
	}
	return TierStable
}
