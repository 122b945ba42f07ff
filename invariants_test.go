package main

import (
	"reflect"
	"testing"
	"time"
)

// Mathematical Invariants Test Suite
//
// Property tests over the lifespan pipeline. They check the logical
// consistency of the calculation rather than specific numeric values.

// =============================================================================
// Transform Invariants
// =============================================================================

func TestInvariant_TransformMonotonicallyDecreasing(t *testing.T) {
	// Property: higher mortality never yields a longer life

	previous, err := AcmToLifespanChange(-99)
	if err != nil {
		t.Fatal(err)
	}
	for acm := -98; acm <= 500; acm++ {
		change, err := AcmToLifespanChange(float64(acm))
		if err != nil {
			t.Fatalf("ACM %d: %v", acm, err)
		}
		if change > previous {
			t.Errorf("Change increased from %.4f to %.4f at ACM %d", previous, change, acm)
		}
		previous = change
	}
}

func TestInvariant_TransformSignMatchesACM(t *testing.T) {
	// Property: protective ACM adds years, harmful ACM removes them

	for _, acm := range []float64{-90, -50, -1, 1, 50, 300} {
		change, err := AcmToLifespanChange(acm)
		if err != nil {
			t.Fatal(err)
		}
		if (acm < 0) != (change > 0) {
			t.Errorf("ACM %.0f gave change %.3f with the wrong sign", acm, change)
		}
	}
}

func TestInvariant_HarmfulChangeBoundedByTenYears(t *testing.T) {
	// Property: no amount of harm removes more than 10 years before clamping

	for _, acm := range []float64{100, 1000, 100000} {
		change, _ := AcmToLifespanChange(acm)
		if change <= -10 {
			t.Errorf("ACM %.0f removed %.3f years", acm, -change)
		}
	}
}

// =============================================================================
// Clamp Invariants
// =============================================================================

func TestInvariant_ClampWithinBounds(t *testing.T) {
	// Property: result is above the current age, at least the minimum,
	// and at most the realistic maximum whenever age allows

	limits := DefaultLimits()
	for age := 1; age <= 120; age += 7 {
		for _, lifespan := range []float64{-50, 0, 25, 60, 80, 110, 115, 116, 500} {
			got := ApplyLifespanLimits(lifespan, age, limits)

			if got < float64(age)+1 {
				t.Errorf("age %d lifespan %.0f: result %.1f not above current age", age, lifespan, got)
			}
			if got < limits.Min {
				t.Errorf("age %d lifespan %.0f: result %.1f below minimum", age, lifespan, got)
			}
			if age+1 <= int(limits.RealisticMax) && got > limits.RealisticMax {
				t.Errorf("age %d lifespan %.0f: result %.1f above realistic max", age, lifespan, got)
			}
		}
	}
}

func TestInvariant_ClampIdempotent(t *testing.T) {
	// Property: clamping a clamped value changes nothing

	limits := DefaultLimits()
	for _, age := range []int{5, 30, 70, 114, 120} {
		for _, lifespan := range []float64{0, 50, 90, 200} {
			once := ApplyLifespanLimits(lifespan, age, limits)
			twice := ApplyLifespanLimits(once, age, limits)
			if once != twice {
				t.Errorf("age %d lifespan %.0f: %.2f then %.2f", age, lifespan, once, twice)
			}
		}
	}
}

// =============================================================================
// Aggregation Invariants
// =============================================================================

func TestInvariant_TotalEqualsSumOfImpacts(t *testing.T) {
	// Property: TotalACM equals the sum of impact values and the category totals

	registry := NewFactorRegistry()
	answerSets := []map[string]string{
		registry.DefaultAnswers(),
		registry.BestAnswers(),
		registry.WorstAnswers(),
	}

	for i, answers := range answerSets {
		impacts, err := registry.ResolveImpacts(answers)
		if err != nil {
			t.Fatal(err)
		}

		sum := 0
		for _, imp := range impacts {
			sum += imp.Value
		}

		res, err := CalculateLifespan(impacts, Male, 40, DefaultBaseLifespan(), DefaultLimits())
		if err != nil {
			t.Fatal(err)
		}
		if res.TotalACM != sum {
			t.Errorf("set %d: TotalACM %d != sum %d", i, res.TotalACM, sum)
		}

		categorySum := 0
		for _, stat := range GetCategoryStats(impacts) {
			categorySum += stat.TotalACM
		}
		if categorySum != sum {
			t.Errorf("set %d: category totals %d != sum %d", i, categorySum, sum)
		}
	}
}

func TestInvariant_RemainingEqualsTotalMinusAge(t *testing.T) {
	// Property: remaining years = total lifespan - current age

	registry := NewFactorRegistry()
	impacts, _ := registry.ResolveImpacts(registry.WorstAnswers())

	for _, age := range []int{1, 20, 45, 70, 100, 120} {
		for _, g := range []Gender{Male, Female} {
			res, err := CalculateLifespan(impacts, g, age, DefaultBaseLifespan(), DefaultLimits())
			if err != nil {
				t.Fatal(err)
			}
			if round1(res.TotalLifespan-float64(age)) != res.RemainingYears {
				t.Errorf("%s age %d: remaining %.1f, total %.1f", g, age, res.RemainingYears, res.TotalLifespan)
			}
			if res.RemainingYears < 1 {
				t.Errorf("%s age %d: remaining %.1f below one year", g, age, res.RemainingYears)
			}
		}
	}
}

func TestInvariant_BetterAnswerNeverShortensLife(t *testing.T) {
	// Property: swapping any single answer for a lower-ACM option never
	// lowers the total lifespan

	registry := NewFactorRegistry()
	base := registry.DefaultAnswers()

	for _, f := range registry.GetAll() {
		for _, a := range f.Options {
			for _, b := range f.Options {
				if b.Value >= a.Value {
					continue
				}
				worse := copyAnswers(base)
				worse[string(f.ID)] = a.ID
				better := copyAnswers(base)
				better[string(f.ID)] = b.ID

				lw := lifespanFor(t, registry, worse)
				lb := lifespanFor(t, registry, better)
				if lb < lw {
					t.Errorf("%s: %s (%d) gave %.1f but %s (%d) gave %.1f",
						f.ID, b.ID, b.Value, lb, a.ID, a.Value, lw)
				}
			}
		}
	}
}

// =============================================================================
// Recommendation Invariants
// =============================================================================

func TestInvariant_NegativeRecommendationsOrdered(t *testing.T) {
	// Property: mitigation advice only covers harmful answers, worst first

	registry := NewFactorRegistry()
	impacts, _ := registry.ResolveImpacts(registry.WorstAnswers())
	negative, _ := GenerateRecommendations(impacts)

	if len(negative) == 0 {
		t.Fatal("Worst answers should produce recommendations")
	}
	for i, r := range negative {
		if r.CurrentImpact <= 0 {
			t.Errorf("Recommendation %s has non-harmful impact %d", r.Factor, r.CurrentImpact)
		}
		if i > 0 && r.CurrentImpact > negative[i-1].CurrentImpact {
			t.Errorf("Recommendation %d (%d) ranks after a smaller impact (%d)",
				i, r.CurrentImpact, negative[i-1].CurrentImpact)
		}
	}
}

func TestInvariant_TopImpactsSortedAndNonZero(t *testing.T) {
	// Property: significant impacts skip zeros and are ordered most beneficial first

	registry := NewFactorRegistry()
	answers := registry.BestAnswers()
	answers[string(FactorSmoking)] = "heavy"
	answers[string(FactorWeight)] = "obese"
	impacts, _ := registry.ResolveImpacts(answers)

	top := SignificantImpacts(impacts, 0)
	for i, imp := range top {
		if imp.Value == 0 {
			t.Errorf("Zero impact %s in significant impacts", imp.Factor)
		}
		if i > 0 && imp.Value < top[i-1].Value {
			t.Errorf("Impact %d (%d) ranks after a larger value (%d)", i, imp.Value, top[i-1].Value)
		}
	}
}

func copyAnswers(answers map[string]string) map[string]string {
	c := make(map[string]string, len(answers))
	for k, v := range answers {
		c[k] = v
	}
	return c
}

func lifespanFor(t *testing.T, registry *FactorRegistry, answers map[string]string) float64 {
	t.Helper()
	impacts, err := registry.ResolveImpacts(answers)
	if err != nil {
		t.Fatal(err)
	}
	res, err := CalculateLifespan(impacts, Female, 40, DefaultBaseLifespan(), DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	return res.TotalLifespan
}

// =============================================================================
// Pipeline Invariants
// =============================================================================

func TestInvariant_EstimateIdempotent(t *testing.T) {
	// Property: estimating the same profile twice gives the same report and
	// leaves the caller's answers untouched

	e := newTestEstimator()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	profiles := []*Profile{
		{Age: 44, Gender: Female, Answers: e.Registry().WorstAnswers()},
		{Age: 30, Gender: Male, Answers: e.Registry().BestAnswers()},
		{Age: 90, Gender: Male, Answers: e.Registry().DefaultAnswers()},
	}

	for _, p := range profiles {
		before := copyAnswers(p.Answers)

		first, err := e.Estimate(p)
		if err != nil {
			t.Fatalf("%s age %d: %v", p.Gender, p.Age, err)
		}
		second, err := e.Estimate(p)
		if err != nil {
			t.Fatalf("%s age %d: %v", p.Gender, p.Age, err)
		}

		if first.ID == second.ID {
			t.Errorf("%s age %d: report IDs should be unique", p.Gender, p.Age)
		}
		second.ID = first.ID
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s age %d: repeated estimates differ:\n%+v\n%+v", p.Gender, p.Age, first, second)
		}
		if !reflect.DeepEqual(before, p.Answers) {
			t.Errorf("%s age %d: Estimate modified the caller's answers", p.Gender, p.Age)
		}
	}
}
