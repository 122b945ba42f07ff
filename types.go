package main

import (
	"fmt"
	"time"
)

// Gender selects the baseline lifespan
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func (g Gender) String() string {
	return string(g)
}

// Label returns the Chinese display name
func (g Gender) Label() string {
	switch g {
	case Male:
		return "男性"
	case Female:
		return "女性"
	default:
		return "未知"
	}
}

// ParseGender converts a form value into a Gender
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case Male, Female:
		return Gender(s), nil
	default:
		return "", ValidationError{Field: "gender", Message: fmt.Sprintf("gender must be male or female (got %q)", s)}
	}
}

// Priority ranks a recommendation
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Label returns the Chinese display name (高/中/低)
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "高"
	case PriorityMedium:
		return "中"
	case PriorityLow:
		return "低"
	default:
		return "?"
	}
}

// MarshalText renders the priority as its tag in JSON
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	for _, candidate := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown priority %q", text)
}

// CategoryTag groups factors for the category breakdown
type CategoryTag int

const (
	CategoryDietSolid CategoryTag = iota
	CategoryDietLiquid
	CategoryLightAndSubstances
	CategorySupplements
	CategoryExerciseAndRoutine
	CategorySleepAndSitting
	CategoryPsychologyAndWeight
)

// AllCategories returns every category in display order
func AllCategories() []CategoryTag {
	return []CategoryTag{
		CategoryDietSolid,
		CategoryDietLiquid,
		CategoryLightAndSubstances,
		CategorySupplements,
		CategoryExerciseAndRoutine,
		CategorySleepAndSitting,
		CategoryPsychologyAndWeight,
	}
}

func (c CategoryTag) String() string {
	switch c {
	case CategoryDietSolid:
		return "diet-solid"
	case CategoryDietLiquid:
		return "diet-liquid"
	case CategoryLightAndSubstances:
		return "light-and-substances"
	case CategorySupplements:
		return "supplements"
	case CategoryExerciseAndRoutine:
		return "exercise-and-routine"
	case CategorySleepAndSitting:
		return "sleep-and-sitting"
	case CategoryPsychologyAndWeight:
		return "psychology-and-weight"
	default:
		return "unknown"
	}
}

// Name returns the Chinese display name of the category
func (c CategoryTag) Name() string {
	switch c {
	case CategoryDietSolid:
		return "饮食 - 固体"
	case CategoryDietLiquid:
		return "饮食 - 液体"
	case CategoryLightAndSubstances:
		return "光照与嗜好"
	case CategorySupplements:
		return "药物与补充剂"
	case CategoryExerciseAndRoutine:
		return "运动与日常"
	case CategorySleepAndSitting:
		return "睡眠与久坐"
	case CategoryPsychologyAndWeight:
		return "心理与体重"
	default:
		return "其他"
	}
}

// EnglishName is used by renderers limited to Latin-1 (PDF core fonts)
func (c CategoryTag) EnglishName() string {
	switch c {
	case CategoryDietSolid:
		return "Diet - Solid"
	case CategoryDietLiquid:
		return "Diet - Liquid"
	case CategoryLightAndSubstances:
		return "Sunlight & Substances"
	case CategorySupplements:
		return "Medication & Supplements"
	case CategoryExerciseAndRoutine:
		return "Exercise & Routine"
	case CategorySleepAndSitting:
		return "Sleep & Sitting"
	case CategoryPsychologyAndWeight:
		return "Psychology & Weight"
	default:
		return "Other"
	}
}

// MarshalText renders the category as its tag in JSON
func (c CategoryTag) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CategoryTag) UnmarshalText(text []byte) error {
	for _, candidate := range AllCategories() {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// LimitType says which physiological limit was hit
type LimitType string

const (
	LimitMax LimitType = "max"
	LimitMin LimitType = "min"
)

// Impact is the resolved effect of one selected option
type Impact struct {
	Factor   FactorID    `json:"factor"`
	Option   string      `json:"option"`
	Value    int         `json:"value"` // Signed ACM change in percent (negative = protective)
	Label    string      `json:"label"`
	LabelEN  string      `json:"label_en"`
	Category CategoryTag `json:"category"`
}

// IsHarmful returns true if the option raises mortality
func (i Impact) IsHarmful() bool {
	return i.Value > 0
}

// LimitWarning is attached when the raw lifespan falls outside the plausible range
type LimitWarning struct {
	Type          LimitType `json:"type"`
	Message       string    `json:"message"`
	MessageEN     string    `json:"message_en"`
	OriginalValue float64   `json:"original_value"`
}

// LifespanResult holds the aggregate outcome of one calculation
type LifespanResult struct {
	TotalACM         int           `json:"total_acm"`         // Unclamped sum of impact values
	EffectiveACM     int           `json:"effective_acm"`     // ACM actually fed to the transform (floored)
	LifespanChange   float64       `json:"lifespan_change"`   // Years, rounded to 0.1
	TotalLifespan    float64       `json:"total_lifespan"`    // Clamped, rounded to 0.1
	RemainingYears   float64       `json:"remaining_years"`   // Clamped, rounded to 0.1
	OriginalLifespan float64       `json:"original_lifespan"` // Before clamping, rounded to 0.1
	BaseLifespan     float64       `json:"base_lifespan"`
	CurrentAge       int           `json:"current_age"`
	LimitWarning     *LimitWarning `json:"limit_warning,omitempty"`
}

// CategoryStat aggregates impacts sharing a category
type CategoryStat struct {
	Category CategoryTag `json:"category"`
	Name     string      `json:"name"`
	TotalACM int         `json:"total_acm"`
	Count    int         `json:"count"`
	Factors  []Impact    `json:"factors"` // Non-zero members only
}

// Recommendation is mitigation advice for a harmful factor
type Recommendation struct {
	Factor        FactorID `json:"factor"`
	Option        string   `json:"option"`
	Label         string   `json:"label"`
	LabelEN       string   `json:"label_en"`
	Advice        string   `json:"advice"`
	AdviceEN      string   `json:"advice_en"`
	Priority      Priority `json:"priority"`
	CurrentImpact int      `json:"current_impact"`
}

// Opportunity is a beneficial behaviour the user has not adopted yet
type Opportunity struct {
	Factor        FactorID `json:"factor"`
	Advice        string   `json:"advice"`
	AdviceEN      string   `json:"advice_en"`
	Priority      Priority `json:"priority"`
	PotentialGain int      `json:"potential_gain"`
}

// Report combines everything a renderer needs for one submission
type Report struct {
	ID            string           `json:"id"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Profile       Profile          `json:"profile"`
	Result        LifespanResult   `json:"result"`
	Impacts       []Impact         `json:"impacts"`
	TopImpacts    []Impact         `json:"top_impacts"`
	CategoryStats []CategoryStat   `json:"category_stats"`
	Negative      []Recommendation `json:"negative_recommendations"`
	Opportunities []Opportunity    `json:"positive_recommendations"`
}

// ACMStatus classifies the total ACM relative to the average
func (r *Report) ACMStatus() string {
	switch {
	case r.Result.TotalACM > 0:
		return "above"
	case r.Result.TotalACM < 0:
		return "below"
	default:
		return "average"
	}
}
