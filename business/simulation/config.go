package simulation

// Config holds episode length and reward shaping weights.
type Config struct {
	MaxSteps int `yaml:"max_steps"`

	// a selection is admitted while spend stays within budget * AdmissionSlack
	AdmissionSlack float64 `yaml:"admission_slack"`

	// per-step reward bound, applied symmetrically
	RewardClip float64 `yaml:"reward_clip"`

	// budget role
	DeviationWeight float64 `yaml:"deviation_weight"`
	TightBandLow    float64 `yaml:"tight_band_low"`
	TightBandHigh   float64 `yaml:"tight_band_high"`
	TightBandBonus  float64 `yaml:"tight_band_bonus"`
	LooseBandLow    float64 `yaml:"loose_band_low"`
	LooseBandHigh   float64 `yaml:"loose_band_high"`
	LooseBandBonus  float64 `yaml:"loose_band_bonus"`
	FullnessDivisor float64 `yaml:"fullness_divisor"`
	FullnessCap     float64 `yaml:"fullness_cap"`

	// compatibility + profile roles
	SizeDivisor        float64 `yaml:"size_divisor"`
	SizeCap            float64 `yaml:"size_cap"`
	DiversityWeight    float64 `yaml:"diversity_weight"`
	MonotonyPenalty    float64 `yaml:"monotony_penalty"`
	MonotonyMinItems   int     `yaml:"monotony_min_items"`
	DuplicateAllowance int     `yaml:"duplicate_allowance"`
	DuplicatePenalty   float64 `yaml:"duplicate_penalty"`
	ExcludedTagPenalty float64 `yaml:"excluded_tag_penalty"`
	IncludedTagBonus   float64 `yaml:"included_tag_bonus"`

	// anti-collusion
	CollusionPenalty float64 `yaml:"collusion_penalty"`
	RepeatPenalty    float64 `yaml:"repeat_penalty"`

	// terminal step
	EndMinItems      int     `yaml:"end_min_items"`
	EndMinCategories int     `yaml:"end_min_categories"`
	EndPenalty       float64 `yaml:"end_penalty"`
}

const (
	defaultMaxSteps           = 10
	defaultAdmissionSlack     = 1.1
	defaultRewardClip         = 5.0
	defaultDeviationWeight    = 2.0
	defaultTightBandLow       = 0.85
	defaultTightBandHigh      = 1.05
	defaultTightBandBonus     = 2.0
	defaultLooseBandLow       = 0.70
	defaultLooseBandHigh      = 1.20
	defaultLooseBandBonus     = 1.0
	defaultFullnessDivisor    = 10.0
	defaultFullnessCap        = 1.0
	defaultSizeDivisor        = 20.0
	defaultSizeCap            = 0.5
	defaultDiversityWeight    = 2.0
	defaultMonotonyPenalty    = 3.0
	defaultMonotonyMinItems   = 3
	defaultDuplicateAllowance = 2
	defaultDuplicatePenalty   = 0.5
	defaultExcludedTagPenalty = 1.0
	defaultIncludedTagBonus   = 0.5
	defaultCollusionPenalty   = 3.0
	defaultRepeatPenalty      = 0.5
	defaultEndMinItems        = 3
	defaultEndMinCategories   = 3
	defaultEndPenalty         = 2.0
)

func DefaultConfig() Config {
	return Config{
		MaxSteps:       defaultMaxSteps,
		AdmissionSlack: defaultAdmissionSlack,
		RewardClip:     defaultRewardClip,

		DeviationWeight: defaultDeviationWeight,
		TightBandLow:    defaultTightBandLow,
		TightBandHigh:   defaultTightBandHigh,
		TightBandBonus:  defaultTightBandBonus,
		LooseBandLow:    defaultLooseBandLow,
		LooseBandHigh:   defaultLooseBandHigh,
		LooseBandBonus:  defaultLooseBandBonus,
		FullnessDivisor: defaultFullnessDivisor,
		FullnessCap:     defaultFullnessCap,

		SizeDivisor:        defaultSizeDivisor,
		SizeCap:            defaultSizeCap,
		DiversityWeight:    defaultDiversityWeight,
		MonotonyPenalty:    defaultMonotonyPenalty,
		MonotonyMinItems:   defaultMonotonyMinItems,
		DuplicateAllowance: defaultDuplicateAllowance,
		DuplicatePenalty:   defaultDuplicatePenalty,
		ExcludedTagPenalty: defaultExcludedTagPenalty,
		IncludedTagBonus:   defaultIncludedTagBonus,

		CollusionPenalty: defaultCollusionPenalty,
		RepeatPenalty:    defaultRepeatPenalty,

		EndMinItems:      defaultEndMinItems,
		EndMinCategories: defaultEndMinCategories,
		EndPenalty:       defaultEndPenalty,
	}
}
