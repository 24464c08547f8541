package refdata

type LaborMode string

const (
	LaborStandard LaborMode = "Standard"
	LaborOwner    LaborMode = "Owner"
	LaborShift    LaborMode = "Shift"
	LaborGig      LaborMode = "Gig"
	LaborStudent  LaborMode = "Student"
	LaborRetired  LaborMode = "Retired"
)

type Sector string

const (
	SectorTech          Sector = "Tech"
	SectorFinance       Sector = "Finance"
	SectorHealthcare    Sector = "Healthcare"
	SectorEducation     Sector = "Education"
	SectorCreative      Sector = "Creative"
	SectorService       Sector = "Service"
	SectorManufacturing Sector = "Manufacturing"
	SectorLogistics     Sector = "Logistics"
	SectorPublic        Sector = "Public"
	SectorGeneral       Sector = "General"
)

type IncomeTier string

const (
	TierSurvival IncomeTier = "Survival"
	TierTight    IncomeTier = "Tight"
	TierStable   IncomeTier = "Stable"
	TierAffluent IncomeTier = "Affluent"
	TierElite    IncomeTier = "Elite"
)

// Coordinates is the MECE classification of an occupation. Tier is optional:
// most jobs span several income tiers, a few (e.g. 學生) pin one.
type Coordinates struct {
	LaborMode LaborMode  `json:"labor_mode"`
	Sector    Sector     `json:"industry_sector"`
	Tier      IncomeTier `json:"income_class,omitempty"`
}

type JobDefinition struct {
	Term        string
	Aliases     []string
	Coordinates Coordinates
	// Weight is enforcement strength in [0,1]. High-authority terms
	// (學生, 公務員) enforce their coordinates even on partial matches.
	Weight    float64
	SalaryKey string
}

// TimeProfile is a canonical 24-hour activity archetype. HourlyWeights are
// expected activity intensities 0-100 indexed by hour of day.
type TimeProfile struct {
	ID            string
	Label         string
	HourlyWeights [24]float64
	WeekendActive bool
	Keywords      []string
}

// IncomeBracket is the annual-income percentile ladder for one age cohort,
// in TWD.
type IncomeBracket struct {
	P10    int
	P25    int
	Median int
	P75    int
	P90    int
	P99    int
}

type GeoProfile struct {
	ID    string
	Label string
	// SurvivalFloor is the minimum monthly subsistence cost in TWD.
	SurvivalFloor int
	// HousingRate is the expected housing-cost-to-income ratio for owners.
	HousingRate float64
	// PovertyLine is the official monthly low-income threshold in TWD.
	PovertyLine    int
	CostMultiplier float64
}

type HouseholdProfile struct {
	ID    string
	Label string
	// DiscretionaryFactor is the share of post-housing income free of
	// family obligations, in (0,1].
	DiscretionaryFactor float64
}

// AmortClass describes how a purchase price spreads over time. PainDiscount
// is the psychological reduction applied to the monthly burden: durables
// hurt less per month than their straight-line share.
type AmortClass struct {
	ID           string
	BaseMonths   int
	PainDiscount float64
}

type SociologyOverrides struct {
	GeoID       string `json:"geo_id,omitempty"`
	HouseholdID string `json:"household_id,omitempty"`
}
