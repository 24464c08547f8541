// Package econ holds the closed-form economic model: the additive expense
// stack behind true disposable income, the logistic purchase-resistance
// curve, and price amortization. All functions are pure over the injected
// reference datasets.
package econ

import (
	"math"
	"strings"

	"github.com/joelkehle/persona-engine/internal/refdata"
)

const (
	// Flat effective tax-and-insurance estimate applied to gross income.
	taxRateEstimate = 0.12
	// Renters carry roughly 55% of the owner-level regional housing ratio.
	renterHousingFactor = 0.55
	// Family burden converts foregone discretionary share into a hard
	// expense ratio.
	familyBurdenFactor = 0.6
	// The expense stack never claims more than 95% of gross.
	expenseRatioCap = 0.95

	// Logistic resistance curve: midpoint at price/disposable = 0.3,
	// steepness 12.
	resistanceMidpoint  = 0.3
	resistanceSteepness = 12
	resistanceFloor     = 5
)

type Physics struct {
	ds *refdata.Datasets
}

func New(ds *refdata.Datasets) *Physics {
	return &Physics{ds: ds}
}

// SurvivalFloor is the minimum monthly subsistence cost for the region,
// falling back to the national general value for unmapped regions.
func (p *Physics) SurvivalFloor(geoID string) int {
	return p.ds.GeoOrGeneral(geoID).SurvivalFloor
}

// HousingPainThreshold is the expected housing-cost-to-income ratio for the
// region.
func (p *Physics) HousingPainThreshold(geoID string) float64 {
	return p.ds.GeoOrGeneral(geoID).HousingRate
}

// ConsumptionPropensity resolves the cohort's average propensity to consume:
// exact label, then substring year-range match, then the national fallback.
func (p *Physics) ConsumptionPropensity(ageRange string) float64 {
	age := strings.TrimSpace(ageRange)
	if v, ok := p.ds.Propensity[age]; ok {
		return v
	}
	for label, v := range p.ds.Propensity {
		if age != "" && (strings.Contains(age, label) || strings.Contains(label, age)) {
			return v
		}
	}
	return refdata.FallbackConsumptionPropensity
}

// PurchaseResistance maps a price against disposable income to a 0-100
// friction score via a logistic curve. Non-positive disposable income
// saturates at 100 instead of dividing by zero.
func PurchaseResistance(price, disposable float64) int {
	if disposable <= 0 {
		return 100
	}
	if price <= 0 {
		return resistanceFloor
	}
	ratio := price / disposable
	r := 100 / (1 + math.Exp(-resistanceSteepness*(ratio-resistanceMidpoint)))
	r = math.Max(resistanceFloor, r)
	out := int(math.Round(r))
	if out > 100 {
		out = 100
	}
	return out
}

// TrueDisposableIncome subtracts an additive stack of tax, housing, and
// family burden ratios from gross, then an absolute regional survival floor.
// The stack is additive rather than multiplicative so overlapping burdens do
// not double-dilute each other.
func (p *Physics) TrueDisposableIncome(grossMonthly float64, geoID string, familyDiscretionary float64, isHomeOwner bool) float64 {
	housing := p.HousingPainThreshold(geoID)
	if !isHomeOwner {
		housing *= renterHousingFactor
	}
	if familyDiscretionary <= 0 || familyDiscretionary > 1 {
		familyDiscretionary = 1
	}
	family := (1 - familyDiscretionary) * familyBurdenFactor

	total := taxRateEstimate + housing + family
	if total > expenseRatioCap {
		total = expenseRatioCap
	}
	return grossMonthly*(1-total) - float64(p.SurvivalFloor(geoID))
}

// MonthlyBurden amortizes a price across the category's assumed lifetime and
// applies its pain discount, yielding the figure PurchaseResistance expects.
// Unknown categories amortize as consumables (one month, no discount).
func (p *Physics) MonthlyBurden(price float64, categoryID string) float64 {
	c, ok := p.ds.AmortClasses[strings.TrimSpace(categoryID)]
	if !ok {
		c = p.ds.AmortClasses["consumable"]
	}
	monthly := price / float64(c.BaseMonths)
	return monthly * (1 - c.PainDiscount)
}
