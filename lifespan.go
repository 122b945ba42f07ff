package main

import (
	"fmt"
	"math"
)

// Limits bounds the computed lifespan
type Limits struct {
	Min             float64 `mapstructure:"min"`               // Theoretical minimum lifespan
	Max             float64 `mapstructure:"max"`               // Longest recorded human lifespan
	RealisticMax    float64 `mapstructure:"realistic_max"`     // Ceiling applied to results
	MinEffectiveACM int     `mapstructure:"min_effective_acm"` // Floor applied before the transform
}

// DefaultLimits returns the standard physiological limits
func DefaultLimits() Limits {
	return Limits{
		Min:             30,
		Max:             122,
		RealisticMax:    115,
		MinEffectiveACM: -99,
	}
}

// BaseLifespan holds the sex-indexed baseline in years
type BaseLifespan struct {
	Male   float64 `mapstructure:"base_male"`
	Female float64 `mapstructure:"base_female"`
}

// DefaultBaseLifespan returns the population baseline (male 75, female 80)
func DefaultBaseLifespan() BaseLifespan {
	return BaseLifespan{Male: 75, Female: 80}
}

// For returns the baseline for a gender
func (b BaseLifespan) For(g Gender) float64 {
	if g == Female {
		return b.Female
	}
	return b.Male
}

// Aggregate sums impact values into the total ACM change (percent)
func Aggregate(impacts []Impact) int {
	total := 0
	for _, i := range impacts {
		total += i.Value
	}
	return total
}

// AcmToLifespanChange converts an ACM change in percent into years.
// -10 (10% lower mortality) gives roughly +1.1 years.
func AcmToLifespanChange(acm float64) (float64, error) {
	if acm <= -100 {
		return 0, DomainError{Value: acm, Message: "ACM change must be greater than -100%"}
	}
	return (1/(1+acm/100) - 1) * 10, nil
}

// ApplyLifespanLimits clamps a lifespan to the plausible range for the current age
func ApplyLifespanLimits(lifespan float64, currentAge int, limits Limits) float64 {
	age := float64(currentAge)

	lifespan = math.Max(lifespan, age)
	lifespan = math.Min(lifespan, limits.RealisticMax)

	minimum := math.Max(age+1, limits.Min)
	return math.Max(lifespan, minimum)
}

// CalculateLifespan turns resolved impacts into a rounded, clamped result
func CalculateLifespan(impacts []Impact, gender Gender, currentAge int, base BaseLifespan, limits Limits) (LifespanResult, error) {
	totalACM := Aggregate(impacts)
	effective := totalACM
	if effective < limits.MinEffectiveACM {
		effective = limits.MinEffectiveACM
	}

	change, err := AcmToLifespanChange(float64(effective))
	if err != nil {
		return LifespanResult{}, fmt.Errorf("transforming ACM %d: %w", effective, err)
	}

	baseline := base.For(gender)
	age := float64(currentAge)
	remaining := baseline - age + change
	raw := age + remaining

	limited := ApplyLifespanLimits(raw, currentAge, limits)

	result := LifespanResult{
		TotalACM:         totalACM,
		EffectiveACM:     effective,
		LifespanChange:   round1(change),
		TotalLifespan:    round1(limited),
		RemainingYears:   round1(limited - age),
		OriginalLifespan: round1(raw),
		BaseLifespan:     baseline,
		CurrentAge:       currentAge,
	}

	switch {
	case raw > limits.RealisticMax:
		result.LimitWarning = &LimitWarning{
			Type: LimitMax,
			Message: fmt.Sprintf("根据计算您的寿命可达%s岁，但已超过人类现实寿命极限(%s岁)。结果已调整为%s岁。",
				formatYears(roundHalfUp(raw)), formatYears(limits.RealisticMax), formatYears(limited)),
			MessageEN: fmt.Sprintf("The calculation gives %s years, above the realistic human limit of %s. The result was capped at %s.",
				formatYears(roundHalfUp(raw)), formatYears(limits.RealisticMax), formatYears(limited)),
			OriginalValue: raw,
		}
	case raw < age+1:
		result.LimitWarning = &LimitWarning{
			Type:          LimitMin,
			Message:       "您的生活习惯存在严重健康风险！建议立即咨询医生并改变生活方式。",
			MessageEN:     "Your lifestyle carries serious health risks. Please see a doctor and change your habits now.",
			OriginalValue: raw,
		}
	}

	return result, nil
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// round1 rounds to one decimal place, ties toward +Inf
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// formatYears prints whole years without a decimal and anything else with one
func formatYears(y float64) string {
	if y == math.Trunc(y) {
		return fmt.Sprintf("%.0f", y)
	}
	return fmt.Sprintf("%.1f", y)
}
