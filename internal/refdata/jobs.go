package refdata

// Job lexicon. Terms and aliases are the surface forms the matcher scores
// against; coordinates are the MECE classification a match resolves to.
var defaultJobs = []JobDefinition{
	{
		Term:        "軟體工程師",
		Aliases:     []string{"工程師", "程式設計師", "程式員", "碼農", "後端工程師", "前端工程師", "software engineer", "developer", "rd"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorTech},
		Weight:      0.8,
		SalaryKey:   "tech_eng",
	},
	{
		Term:        "學生",
		Aliases:     []string{"大學生", "研究生", "高中生", "碩士生", "student"},
		Coordinates: Coordinates{LaborMode: LaborStudent, Sector: SectorEducation, Tier: TierSurvival},
		Weight:      0.95,
		SalaryKey:   "student",
	},
	{
		Term:        "護理師",
		Aliases:     []string{"護士", "nurse"},
		Coordinates: Coordinates{LaborMode: LaborShift, Sector: SectorHealthcare},
		Weight:      0.85,
		SalaryKey:   "nurse",
	},
	{
		Term:        "醫師",
		Aliases:     []string{"醫生", "主治醫師", "doctor"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorHealthcare, Tier: TierAffluent},
		Weight:      0.9,
		SalaryKey:   "doctor",
	},
	{
		Term:        "老闆",
		Aliases:     []string{"老板", "自營商", "創業者", "負責人", "business owner", "founder"},
		Coordinates: Coordinates{LaborMode: LaborOwner, Sector: SectorService},
		Weight:      0.8,
		SalaryKey:   "owner",
	},
	{
		Term:        "設計師",
		Aliases:     []string{"平面設計師", "美術設計", "美編", "designer"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorCreative},
		Weight:      0.75,
		SalaryKey:   "creative",
	},
	{
		Term:        "教師",
		Aliases:     []string{"老師", "補習班老師", "講師", "teacher"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorEducation},
		Weight:      0.8,
		SalaryKey:   "public",
	},
	{
		Term:        "公務員",
		Aliases:     []string{"公職", "公務人員", "civil servant"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorPublic},
		Weight:      0.9,
		SalaryKey:   "public",
	},
	{
		Term:        "金融分析師",
		Aliases:     []string{"分析師", "銀行員", "理專", "analyst"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorFinance},
		Weight:      0.75,
		SalaryKey:   "finance",
	},
	{
		Term:        "行銷專員",
		Aliases:     []string{"行銷", "企劃", "marketing"},
		Coordinates: Coordinates{LaborMode: LaborStandard, Sector: SectorCreative},
		Weight:      0.7,
		SalaryKey:   "creative",
	},
	{
		Term:        "外送員",
		Aliases:     []string{"外送", "foodpanda", "uber eats", "delivery"},
		Coordinates: Coordinates{LaborMode: LaborGig, Sector: SectorLogistics},
		Weight:      0.8,
		SalaryKey:   "gig",
	},
	{
		Term:        "司機",
		Aliases:     []string{"計程車司機", "貨車司機", "driver"},
		Coordinates: Coordinates{LaborMode: LaborGig, Sector: SectorLogistics},
		Weight:      0.7,
		SalaryKey:   "gig",
	},
	{
		Term:        "作業員",
		Aliases:     []string{"工廠作業員", "產線作業員", "operator"},
		Coordinates: Coordinates{LaborMode: LaborShift, Sector: SectorManufacturing},
		Weight:      0.7,
		SalaryKey:   "factory",
	},
	{
		Term:        "網紅",
		Aliases:     []string{"直播主", "youtuber", "kol", "influencer"},
		Coordinates: Coordinates{LaborMode: LaborGig, Sector: SectorCreative},
		Weight:      0.7,
		SalaryKey:   "creative",
	},
	{
		Term:        "退休人士",
		Aliases:     []string{"退休", "retired"},
		Coordinates: Coordinates{LaborMode: LaborRetired, Sector: SectorGeneral},
		Weight:      0.85,
		SalaryKey:   "retiree",
	},
	{
		Term:        "店員",
		Aliases:     []string{"門市人員", "服務生", "餐飲服務", "clerk"},
		Coordinates: Coordinates{LaborMode: LaborShift, Sector: SectorService},
		Weight:      0.7,
		SalaryKey:   "service",
	},
}
