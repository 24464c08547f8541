package sociology

import (
	"strings"

	"github.com/joelkehle/persona-engine/internal/refdata"
)

var moneyTypeByLabor = map[refdata.LaborMode]MoneyType{
	refdata.LaborStandard: MoneyStableSalary,
	refdata.LaborOwner:    MoneyCashFlow,
	refdata.LaborShift:    MoneyStableSalary,
	refdata.LaborGig:      MoneyPieceRate,
	refdata.LaborStudent:  MoneyBloodSweat,
	refdata.LaborRetired:  MoneyFixedPension,
}

func moneyTypeFor(labor refdata.LaborMode) MoneyType {
	if mt, ok := moneyTypeByLabor[labor]; ok {
		return mt
	}
	return MoneyStableSalary
}

// vanityFor is the social-display proxy of an occupation: creative and
// student roles live under visible peer pressure, tech and manufacturing
// mostly do not.
func vanityFor(coords refdata.Coordinates) VanityLevel {
	if coords.LaborMode == refdata.LaborStudent {
		return VanityHigh
	}
	switch coords.Sector {
	case refdata.SectorCreative:
		return VanityHigh
	case refdata.SectorTech, refdata.SectorManufacturing, refdata.SectorPublic:
		return VanityLow
	default:
		return VanityMedium
	}
}

func ageBandFor(ageRange string) AgeBand {
	age := strings.TrimSpace(ageRange)
	switch {
	case strings.Contains(age, "18-25"):
		return AgeYoung
	case strings.Contains(age, "26-35"), strings.Contains(age, "36-45"):
		return AgeMiddle
	case strings.Contains(age, "46-55"), strings.Contains(age, "56"):
		return AgeSenior
	default:
		return AgeMiddle
	}
}

// tensionRule rows key on closed enums only; the first matching row wins and
// the final row is a catch-all, so the table is total.
type tensionRule struct {
	money    []MoneyType
	labor    []refdata.LaborMode
	tiers    []refdata.IncomeTier
	ages     []AgeBand
	vanity   []VanityLevel
	strategy CopingStrategy
	face     int
	template string
}

var tensionRules = []tensionRule{
	{
		// Owner with poor cash flow keeps the storefront lit on credit.
		money:    []MoneyType{MoneyCashFlow},
		tiers:    []refdata.IncomeTier{refdata.TierSurvival, refdata.TierTight},
		strategy: CopingInstallmentKing,
		face:     85,
		template: "tension_installment_king",
	},
	{
		// Affluent low-vanity roles hide the money.
		money:    []MoneyType{MoneyStableSalary, MoneyCashFlow},
		tiers:    []refdata.IncomeTier{refdata.TierAffluent, refdata.TierElite},
		vanity:   []VanityLevel{VanityLow},
		strategy: CopingStealthWealth,
		face:     20,
		template: "tension_stealth_wealth",
	},
	{
		// Young, poor, high-vanity: the family wallet absorbs the gap.
		tiers:    []refdata.IncomeTier{refdata.TierSurvival, refdata.TierTight},
		ages:     []AgeBand{AgeYoung},
		vanity:   []VanityLevel{VanityHigh},
		strategy: CopingMomBank,
		face:     90,
		template: "tension_mom_bank",
	},
	{
		// Shift work with a steady paycheck buys relief after the shift.
		labor:    []refdata.LaborMode{refdata.LaborShift},
		tiers:    []refdata.IncomeTier{refdata.TierTight, refdata.TierStable},
		strategy: CopingCompensatory,
		face:     60,
		template: "tension_compensatory",
	},
	{
		strategy: CopingPragmaticBalance,
		face:     45,
		template: "tension_pragmatic",
	},
}

func inferTension(coords refdata.Coordinates, tier refdata.IncomeTier, age AgeBand) SocialTension {
	mt := moneyTypeFor(coords.LaborMode)
	vanity := vanityFor(coords)
	for _, r := range tensionRules {
		if !containsOrEmpty(r.money, mt) {
			continue
		}
		if !containsOrEmpty(r.labor, coords.LaborMode) {
			continue
		}
		if !containsOrEmpty(r.tiers, tier) {
			continue
		}
		if !containsOrEmpty(r.ages, age) {
			continue
		}
		if !containsOrEmpty(r.vanity, vanity) {
			continue
		}
		return SocialTension{
			MoneyType:         mt,
			FaceScore:         r.face,
			CopingStrategy:    r.strategy,
			NarrativeOverride: r.template,
		}
	}
	// Unreachable: the last rule has no predicates.
	return SocialTension{MoneyType: mt, FaceScore: 45, CopingStrategy: CopingPragmaticBalance, NarrativeOverride: "tension_pragmatic"}
}

func containsOrEmpty[T comparable](set []T, v T) bool {
	if len(set) == 0 {
		return true
	}
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
