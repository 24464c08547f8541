package refdata

// Canonical time-use archetypes. Declaration order matters: the time-pattern
// matcher breaks confidence ties in favor of earlier entries.
var defaultTimeProfiles = []TimeProfile{
	{
		ID:    "office_worker",
		Label: "朝九晚五上班族",
		HourlyWeights: [24]float64{
			2, 1, 1, 1, 1, 3, 15, 40, 70, 90, 85, 80,
			60, 80, 85, 85, 80, 70, 50, 45, 40, 30, 15, 5,
		},
		WeekendActive: false,
		Keywords:      []string{"commute", "office", "standard"},
	},
	{
		ID:    "night_shift",
		Label: "夜班輪值",
		HourlyWeights: [24]float64{
			80, 85, 85, 80, 70, 50, 25, 10, 5, 3, 2, 5,
			10, 15, 15, 20, 25, 35, 45, 55, 65, 70, 75, 80,
		},
		WeekendActive: true,
		Keywords:      []string{"shift", "night", "hospital", "factory"},
	},
	{
		ID:    "student_campus",
		Label: "校園學生作息",
		HourlyWeights: [24]float64{
			25, 15, 5, 2, 1, 1, 5, 30, 60, 70, 70, 65,
			55, 65, 70, 60, 50, 45, 50, 60, 70, 75, 65, 45,
		},
		WeekendActive: true,
		Keywords:      []string{"student", "campus", "late-night"},
	},
	{
		ID:    "freelancer_creative",
		Label: "自由接案者",
		HourlyWeights: [24]float64{
			55, 45, 30, 15, 5, 2, 2, 5, 15, 30, 50, 65,
			70, 70, 65, 60, 55, 50, 45, 50, 60, 65, 65, 60,
		},
		WeekendActive: true,
		Keywords:      []string{"freelance", "creative", "gig"},
	},
	{
		ID:    "shop_owner",
		Label: "店家老闆",
		HourlyWeights: [24]float64{
			10, 5, 3, 2, 2, 5, 20, 45, 70, 85, 90, 90,
			85, 85, 85, 85, 85, 85, 90, 90, 85, 70, 40, 20,
		},
		WeekendActive: true,
		Keywords:      []string{"owner", "retail", "long-hours"},
	},
	{
		ID:    "gig_driver",
		Label: "外送接單高峰",
		HourlyWeights: [24]float64{
			10, 5, 3, 2, 2, 5, 15, 30, 40, 45, 70, 95,
			90, 50, 40, 45, 60, 90, 95, 85, 60, 45, 30, 20,
		},
		WeekendActive: true,
		Keywords:      []string{"delivery", "gig", "meal-peak"},
	},
	{
		ID:    "retiree",
		Label: "退休族作息",
		HourlyWeights: [24]float64{
			2, 1, 1, 1, 5, 30, 60, 70, 65, 60, 55, 50,
			40, 30, 35, 45, 55, 60, 55, 45, 30, 15, 8, 4,
		},
		WeekendActive: true,
		Keywords:      []string{"retired", "early-riser"},
	},
}
