package econ

import (
	"math"
	"testing"

	"github.com/joelkehle/persona-engine/internal/refdata"
)

func newPhysics(t *testing.T) *Physics {
	t.Helper()
	ds, err := refdata.Load()
	if err != nil {
		t.Fatalf("load refdata: %v", err)
	}
	return New(ds)
}

func TestPurchaseResistanceBounds(t *testing.T) {
	if got := PurchaseResistance(1000, 0); got != 100 {
		t.Fatalf("zero disposable must saturate at 100, got %d", got)
	}
	if got := PurchaseResistance(1000, -500); got != 100 {
		t.Fatalf("negative disposable must saturate at 100, got %d", got)
	}
	if got := PurchaseResistance(1, 1000000); got != 5 {
		t.Fatalf("negligible price must hit the floor of 5, got %d", got)
	}
	if got := PurchaseResistance(10000000, 1); got != 100 {
		t.Fatalf("extreme ratio must cap at 100, got %d", got)
	}
}

func TestPurchaseResistanceMonotonic(t *testing.T) {
	prev := 0
	for price := 0.0; price <= 30000; price += 500 {
		got := PurchaseResistance(price, 30000)
		if got < prev {
			t.Fatalf("resistance decreased at price %f: %d < %d", price, got, prev)
		}
		if got < 5 || got > 100 {
			t.Fatalf("resistance out of [5,100] at price %f: %d", price, got)
		}
		prev = got
	}
}

func TestPurchaseResistanceMidpoint(t *testing.T) {
	// At ratio exactly 0.3 the logistic sits at its midpoint: 50.
	if got := PurchaseResistance(3000, 10000); got != 50 {
		t.Fatalf("expected 50 at midpoint ratio, got %d", got)
	}
}

func TestTrueDisposableIncomeAdditiveStack(t *testing.T) {
	p := newPhysics(t)
	// general geo: housing 0.32 owner-rate, survival floor 14500.
	// owner, single (df 0.85): total = 0.12 + 0.32 + 0.09 = 0.53.
	got := p.TrueDisposableIncome(60000, "general", 0.85, true)
	want := 60000*(1-0.53) - 14500
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("unexpected disposable: got=%f want=%f", got, want)
	}
}

func TestTrueDisposableIncomeRenterDiscount(t *testing.T) {
	p := newPhysics(t)
	owner := p.TrueDisposableIncome(60000, "taipei", 0.85, true)
	renter := p.TrueDisposableIncome(60000, "taipei", 0.85, false)
	if renter <= owner {
		t.Fatalf("renting must cost less than owning: renter=%f owner=%f", renter, owner)
	}
}

func TestTrueDisposableIncomeSandwichClassStrictlyLower(t *testing.T) {
	p := newPhysics(t)
	ds, _ := refdata.Load()
	single := p.TrueDisposableIncome(60000, "general", ds.Households["single"].DiscretionaryFactor, false)
	sandwich := p.TrueDisposableIncome(60000, "general", ds.Households["sandwich_class"].DiscretionaryFactor, false)
	if sandwich >= single {
		t.Fatalf("sandwich class must have strictly lower disposable income: %f >= %f", sandwich, single)
	}
}

func TestTrueDisposableIncomeRatioCap(t *testing.T) {
	p := newPhysics(t)
	// Absurd discretionary factor pushes past the cap; stack must clamp at 0.95.
	got := p.TrueDisposableIncome(100000, "taipei", 0.01, true)
	want := 100000*(1-0.95) - float64(p.SurvivalFloor("taipei"))
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("expense ratio not capped: got=%f want=%f", got, want)
	}
}

func TestSurvivalFloorFallback(t *testing.T) {
	p := newPhysics(t)
	if p.SurvivalFloor("nowhere") != p.SurvivalFloor("general") {
		t.Fatal("unmapped region must fall back to the general floor")
	}
	if p.SurvivalFloor("taipei") <= p.SurvivalFloor("rural") {
		t.Fatal("taipei floor should exceed rural floor")
	}
}

func TestConsumptionPropensity(t *testing.T) {
	p := newPhysics(t)
	if got := p.ConsumptionPropensity("26-35"); got != 0.85 {
		t.Fatalf("exact cohort: got %f", got)
	}
	if got := p.ConsumptionPropensity("26-35歲"); got != 0.85 {
		t.Fatalf("substring cohort: got %f", got)
	}
	if got := p.ConsumptionPropensity("martian"); got != refdata.FallbackConsumptionPropensity {
		t.Fatalf("unknown cohort must use fallback, got %f", got)
	}
}

func TestMonthlyBurden(t *testing.T) {
	p := newPhysics(t)
	// durable: 36 months, 0.5 pain discount.
	got := p.MonthlyBurden(36000, "durable")
	if math.Abs(got-500) > 0.01 {
		t.Fatalf("durable burden: got %f want 500", got)
	}
	// unknown category behaves as consumable.
	if got := p.MonthlyBurden(1200, "mystery"); math.Abs(got-1200) > 0.01 {
		t.Fatalf("unknown category burden: got %f want 1200", got)
	}
}
