package sociology

import (
	"strings"
	"testing"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/refdata"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := refdata.Load()
	if err != nil {
		t.Fatalf("load refdata: %v", err)
	}
	return NewEngine(ds, lexicon.New(ds), econ.New(ds))
}

func TestOwnerWithPoorCashFlowIsInstallmentKing(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("36-45", "老闆", "Tight", nil, nil)
	st := ctx.RealityCheck.SocialTension
	if st == nil {
		t.Fatal("expected social tension")
	}
	if st.MoneyType != MoneyCashFlow {
		t.Fatalf("owner money type: got %s", st.MoneyType)
	}
	if st.CopingStrategy != CopingInstallmentKing {
		t.Fatalf("expected Installment_King, got %s", st.CopingStrategy)
	}
}

func TestAffluentTechIsStealthWealth(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("26-35", "軟體工程師", "Affluent", nil, nil)
	st := ctx.RealityCheck.SocialTension
	if st.CopingStrategy != CopingStealthWealth {
		t.Fatalf("expected Stealth_Wealth, got %s", st.CopingStrategy)
	}
	if st.FaceScore >= 40 {
		t.Fatalf("stealth wealth face score should be low, got %d", st.FaceScore)
	}
}

func TestYoungStudentIsMomBank(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("18-25", "學生", "Stable", nil, nil)
	st := ctx.RealityCheck.SocialTension
	if st.MoneyType != MoneyBloodSweat {
		t.Fatalf("student money type: got %s", st.MoneyType)
	}
	if st.CopingStrategy != CopingMomBank {
		t.Fatalf("expected Mom_Bank, got %s", st.CopingStrategy)
	}
	// 學生 pins the Survival tier regardless of the declared label.
	if ctx.Resolved.Tier != refdata.TierSurvival {
		t.Fatalf("student tier should be enforced to Survival, got %s", ctx.Resolved.Tier)
	}
}

func TestShiftWorkerIsCompensatory(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("26-35", "護理師", "Stable", nil, nil)
	if got := ctx.RealityCheck.SocialTension.CopingStrategy; got != CopingCompensatory {
		t.Fatalf("expected Compensatory_Consumption, got %s", got)
	}
}

func TestFallbackStrategyIsTotal(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("46-55", "公務員", "Stable", nil, nil)
	if got := ctx.RealityCheck.SocialTension.CopingStrategy; got != CopingPragmaticBalance {
		t.Fatalf("expected the catch-all Pragmatic_Balance, got %s", got)
	}
}

func TestSandwichClassOverrideReducesDisposable(t *testing.T) {
	e := newEngine(t)
	base := e.Context("36-45", "軟體工程師", "Stable", nil, nil)
	forced := e.Context("36-45", "軟體工程師", "Stable", nil, &refdata.SociologyOverrides{HouseholdID: "sandwich_class"})
	if forced.Resolved.DisposableMonthly >= base.Resolved.DisposableMonthly {
		t.Fatalf("forced sandwich class must strictly reduce disposable income: %f >= %f",
			forced.Resolved.DisposableMonthly, base.Resolved.DisposableMonthly)
	}
	if !strings.Contains(forced.Narrative, "Sandwich Class") {
		t.Fatalf("narrative must surface the forced household label, got: %s", forced.Narrative)
	}
}

func TestCoherenceInsolvent(t *testing.T) {
	e := newEngine(t)
	ev := &ObservedEvidence{TotalSpending30d: 90000}
	ctx := e.Context("36-45", "老闆", "Tight", ev, nil)
	if ctx.RealityCheck.CoherenceLevel != CoherenceInsolvent {
		t.Fatalf("spending above gross must read Insolvent, got %s", ctx.RealityCheck.CoherenceLevel)
	}
}

func TestCoherenceAnomaly(t *testing.T) {
	e := newEngine(t)
	ev := &ObservedEvidence{MaxObservedTransaction: 300000}
	ctx := e.Context("26-35", "軟體工程師", "Stable", ev, nil)
	if ctx.RealityCheck.CoherenceLevel != CoherenceAnomaly {
		t.Fatalf("10x transaction must read Anomaly, got %s", ctx.RealityCheck.CoherenceLevel)
	}
}

func TestCoherenceDelusional(t *testing.T) {
	e := newEngine(t)
	ev := &ObservedEvidence{MaxObservedTransaction: 40000}
	ctx := e.Context("26-35", "軟體工程師", "Tight", ev, nil)
	if ctx.RealityCheck.CoherenceLevel != CoherenceDelusional {
		t.Fatalf("3x transaction on a Tight budget must read Delusional, got %s", ctx.RealityCheck.CoherenceLevel)
	}
}

func TestCoherenceParadox(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("56+", "退休人士", "Elite", nil, nil)
	if ctx.RealityCheck.CoherenceLevel != CoherenceParadox {
		t.Fatalf("retired Elite must read Paradox, got %s", ctx.RealityCheck.CoherenceLevel)
	}
}

func TestCoherenceLowOnUnknownRole(t *testing.T) {
	e := newEngine(t)
	ctx := e.Context("26-35", "asdkfjalskdjf", "Stable", nil, nil)
	if ctx.RealityCheck.CoherenceLevel != CoherenceLow {
		t.Fatalf("unmatched role must read Low, got %s", ctx.RealityCheck.CoherenceLevel)
	}
	if ctx.Resolved.Coordinates != refdata.NeutralCoordinates() {
		t.Fatalf("unmatched role must resolve to neutral coordinates, got %+v", ctx.Resolved.Coordinates)
	}
	if ctx.Constraints.MoneyRules == "" || ctx.Constraints.TimeRules == "" {
		t.Fatal("constraints must always be populated")
	}
}
