package refdata

// Economic reference tables. Monetary figures are TWD; brackets are annual,
// salary curves and floors are monthly.

var defaultIncomeBrackets = map[string]IncomeBracket{
	"18-25": {P10: 240000, P25: 300000, Median: 360000, P75: 460000, P90: 600000, P99: 1200000},
	"26-35": {P10: 320000, P25: 420000, Median: 540000, P75: 720000, P90: 960000, P99: 2400000},
	"36-45": {P10: 360000, P25: 480000, Median: 660000, P75: 900000, P90: 1300000, P99: 3600000},
	"46-55": {P10: 360000, P25: 480000, Median: 640000, P75: 920000, P90: 1500000, P99: 4800000},
	"56+":   {P10: 300000, P25: 400000, Median: 560000, P75: 800000, P90: 1200000, P99: 3600000},
}

// Average propensity to consume by age cohort.
var defaultConsumptionPropensity = map[string]float64{
	"18-25": 0.92,
	"26-35": 0.85,
	"36-45": 0.78,
	"46-55": 0.72,
	"56+":   0.65,
}

const FallbackConsumptionPropensity = 0.75

var defaultGeoProfiles = map[string]GeoProfile{
	"taipei": {
		ID: "taipei", Label: "台北市",
		SurvivalFloor: 17000, HousingRate: 0.42, PovertyLine: 19649, CostMultiplier: 1.25,
	},
	"new_taipei": {
		ID: "new_taipei", Label: "新北市",
		SurvivalFloor: 15500, HousingRate: 0.36, PovertyLine: 16400, CostMultiplier: 1.1,
	},
	"urban_west": {
		ID: "urban_west", Label: "西部都會區",
		SurvivalFloor: 14000, HousingRate: 0.3, PovertyLine: 15515, CostMultiplier: 1.0,
	},
	"rural": {
		ID: "rural", Label: "鄉鎮地區",
		SurvivalFloor: 12000, HousingRate: 0.22, PovertyLine: 14230, CostMultiplier: 0.85,
	},
	"general": {
		ID: "general", Label: "全國一般",
		SurvivalFloor: 14500, HousingRate: 0.32, PovertyLine: 15515, CostMultiplier: 1.0,
	},
}

var defaultHouseholdProfiles = map[string]HouseholdProfile{
	"single":              {ID: "single", Label: "Single", DiscretionaryFactor: 0.85},
	"couple_dual_income":  {ID: "couple_dual_income", Label: "Dual-Income Couple", DiscretionaryFactor: 0.8},
	"nuclear_family":      {ID: "nuclear_family", Label: "Nuclear Family", DiscretionaryFactor: 0.55},
	"sandwich_class":      {ID: "sandwich_class", Label: "Sandwich Class", DiscretionaryFactor: 0.35},
	"single_parent":       {ID: "single_parent", Label: "Single Parent", DiscretionaryFactor: 0.4},
	"living_with_parents": {ID: "living_with_parents", Label: "Living With Parents", DiscretionaryFactor: 0.9},
}

// Monthly gross salary by salary key and income tier.
var defaultSalaryCurves = map[string]map[IncomeTier]int{
	"tech_eng": {TierSurvival: 30000, TierTight: 42000, TierStable: 65000, TierAffluent: 110000, TierElite: 220000},
	"student":  {TierSurvival: 8000, TierTight: 14000, TierStable: 22000, TierAffluent: 32000, TierElite: 60000},
	"nurse":    {TierSurvival: 32000, TierTight: 40000, TierStable: 52000, TierAffluent: 70000, TierElite: 95000},
	"doctor":   {TierSurvival: 60000, TierTight: 90000, TierStable: 150000, TierAffluent: 250000, TierElite: 500000},
	"owner":    {TierSurvival: 25000, TierTight: 40000, TierStable: 70000, TierAffluent: 150000, TierElite: 400000},
	"creative": {TierSurvival: 26000, TierTight: 34000, TierStable: 48000, TierAffluent: 80000, TierElite: 150000},
	"public":   {TierSurvival: 33000, TierTight: 42000, TierStable: 55000, TierAffluent: 75000, TierElite: 110000},
	"finance":  {TierSurvival: 35000, TierTight: 48000, TierStable: 70000, TierAffluent: 130000, TierElite: 300000},
	"gig":      {TierSurvival: 24000, TierTight: 32000, TierStable: 45000, TierAffluent: 65000, TierElite: 90000},
	"factory":  {TierSurvival: 27000, TierTight: 33000, TierStable: 42000, TierAffluent: 58000, TierElite: 80000},
	"service":  {TierSurvival: 25000, TierTight: 31000, TierStable: 40000, TierAffluent: 55000, TierElite: 75000},
	"retiree":  {TierSurvival: 15000, TierTight: 22000, TierStable: 35000, TierAffluent: 60000, TierElite: 120000},
	"default":  {TierSurvival: 26000, TierTight: 35000, TierStable: 50000, TierAffluent: 85000, TierElite: 180000},
}

var defaultAmortClasses = map[string]AmortClass{
	"durable":      {ID: "durable", BaseMonths: 36, PainDiscount: 0.5},
	"semi_durable": {ID: "semi_durable", BaseMonths: 12, PainDiscount: 0.3},
	"consumable":   {ID: "consumable", BaseMonths: 1, PainDiscount: 0},
	"luxury":       {ID: "luxury", BaseMonths: 24, PainDiscount: 0.1},
	"subscription": {ID: "subscription", BaseMonths: 1, PainDiscount: 0.2},
}
