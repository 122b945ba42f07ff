package main

import (
	"strings"
	"testing"
)

// End-to-End Scenario Tests
//
// These tests run complete profiles through the estimator to ensure all
// components work together correctly.

func newTestEstimator() *Estimator {
	return NewEstimator(nil, nil)
}

// =============================================================================
// Extreme Profiles
// =============================================================================

func TestScenario_AllBestAnswers(t *testing.T) {
	// Scenario: 30 year old man choosing the most protective option everywhere.
	// Total ACM is far below -100, so the floor applies and the cap kicks in.

	e := newTestEstimator()
	profile := &Profile{Age: 30, Gender: Male, Answers: e.Registry().BestAnswers()}

	report, err := e.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	if res.TotalACM != -587 {
		t.Errorf("TotalACM = %d, expected -587", res.TotalACM)
	}
	if res.EffectiveACM != -99 {
		t.Errorf("EffectiveACM = %d, expected -99", res.EffectiveACM)
	}
	if res.TotalLifespan != 115 {
		t.Errorf("TotalLifespan = %.1f, expected 115", res.TotalLifespan)
	}
	if res.RemainingYears != 85 {
		t.Errorf("RemainingYears = %.1f, expected 85", res.RemainingYears)
	}
	if res.LimitWarning == nil || res.LimitWarning.Type != LimitMax {
		t.Fatalf("Expected max limit warning, got %+v", res.LimitWarning)
	}
	if !strings.Contains(res.LimitWarning.Message, "115") {
		t.Errorf("Max warning should mention the cap: %s", res.LimitWarning.Message)
	}
	if len(report.Opportunities) != 0 {
		t.Errorf("Expected no opportunities, got %d", len(report.Opportunities))
	}
	if len(report.Negative) != 0 {
		t.Errorf("Expected no negative recommendations, got %d", len(report.Negative))
	}
	if report.ACMStatus() != "below" {
		t.Errorf("ACM status = %s, expected below", report.ACMStatus())
	}

	t.Logf("Raw lifespan before the cap: %.1f", res.OriginalLifespan)
}

func TestScenario_HealthyHabitsWithoutWeightLoss(t *testing.T) {
	// Scenario: the most protective habits but normal weight, mixed protein
	// and no metformin. Still far below -100% ACM.

	e := newTestEstimator()
	answers := map[string]string{
		"meatType": "white", "vegetableFruit": "high", "chili": "regular", "nuts": "daily",
		"ultraProcessed": "rare", "coffee": "optimal", "milk": "high", "tea": "daily",
		"sugaryDrinks": "none", "alcohol": "none", "smoking": "never", "sunlight": "regular",
		"metformin": "notApplicable", "multivitamin": "regular", "glucosamine": "regular",
		"spermidine": "high", "racquetSports": "regular", "intenseExercise": "high",
		"housework": "heavy", "dailySteps": "high", "brushTeeth": "twice", "bathing": "daily",
		"sleepDuration": "optimal", "sleepTime": "optimal", "sitting": "low",
		"emotion": "optimistic", "weight": "normal", "betelNut": "never", "carbs": "optimal",
		"proteinSource": "mixed",
	}

	report, err := e.Estimate(&Profile{Age: 30, Gender: Male, Answers: answers})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	if res.TotalACM != -508 {
		t.Errorf("TotalACM = %d, expected -508", res.TotalACM)
	}
	if res.TotalLifespan != 115 {
		t.Errorf("TotalLifespan = %.1f, expected 115", res.TotalLifespan)
	}
	if res.LimitWarning == nil || res.LimitWarning.Type != LimitMax {
		t.Errorf("Expected max limit warning, got %+v", res.LimitWarning)
	}
	// Mixed protein leaves one opportunity open
	if len(report.Opportunities) != 1 || report.Opportunities[0].Factor != FactorProteinSource {
		t.Errorf("Expected only the protein opportunity, got %+v", report.Opportunities)
	}
}

func TestScenario_AllWorstAnswersFemale40(t *testing.T) {
	// Scenario: 40 year old woman with every most harmful option.
	// +363% ACM removes about 7.8 years, leaving her above her current age.

	e := newTestEstimator()
	profile := &Profile{Age: 40, Gender: Female, Answers: e.Registry().WorstAnswers()}

	report, err := e.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	if res.TotalACM != 363 {
		t.Errorf("TotalACM = %d, expected 363", res.TotalACM)
	}
	assertYearsEqual(t, -7.8, res.LifespanChange, "lifespan change")
	assertYearsEqual(t, 72.2, res.TotalLifespan, "total lifespan")
	assertYearsEqual(t, 32.2, res.RemainingYears, "remaining years")
	if res.LimitWarning != nil {
		t.Errorf("No limit applies at 72.2 years, got %s warning", res.LimitWarning.Type)
	}
	if report.ACMStatus() != "above" {
		t.Errorf("ACM status = %s, expected above", report.ACMStatus())
	}

	// Smoking heavy (+54) is the single most harmful answer
	if len(report.Negative) == 0 || report.Negative[0].Factor != FactorSmoking {
		t.Errorf("Expected smoking to top the recommendations, got %+v", report.Negative)
	}
	if len(report.Opportunities) != 9 {
		t.Errorf("Expected all 9 opportunities, got %d", len(report.Opportunities))
	}
}

func TestScenario_AllWorstAnswersMale70(t *testing.T) {
	// Scenario: 70 year old man with every most harmful option.
	// The raw estimate (about 67.2) is below his age, so the minimum applies.

	e := newTestEstimator()
	profile := &Profile{Age: 70, Gender: Male, Answers: e.Registry().WorstAnswers()}

	report, err := e.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	if res.TotalLifespan != 71 {
		t.Errorf("TotalLifespan = %.1f, expected 71", res.TotalLifespan)
	}
	if res.RemainingYears != 1 {
		t.Errorf("RemainingYears = %.1f, expected 1", res.RemainingYears)
	}
	assertYearsEqual(t, 67.2, res.OriginalLifespan, "original lifespan")
	if res.LimitWarning == nil || res.LimitWarning.Type != LimitMin {
		t.Fatalf("Expected min limit warning, got %+v", res.LimitWarning)
	}
}

func TestScenario_AllNeutralAnswers(t *testing.T) {
	// Scenario: default answers give exactly the population baseline

	e := newTestEstimator()

	tests := []struct {
		gender   Gender
		age      int
		expected float64
	}{
		{Male, 30, 75},
		{Female, 30, 80},
		{Female, 79, 80},
	}

	for _, tc := range tests {
		profile := &Profile{Age: tc.age, Gender: tc.gender, Answers: e.Registry().DefaultAnswers()}
		report, err := e.Estimate(profile)
		if err != nil {
			t.Fatalf("Estimate failed: %v", err)
		}
		res := report.Result
		if res.TotalACM != 0 || res.LifespanChange != 0 {
			t.Errorf("%s %d: expected zero ACM and change, got %d / %.1f", tc.gender, tc.age, res.TotalACM, res.LifespanChange)
		}
		if res.TotalLifespan != tc.expected {
			t.Errorf("%s %d: lifespan %.1f, expected %.1f", tc.gender, tc.age, res.TotalLifespan, tc.expected)
		}
		if res.LimitWarning != nil {
			t.Errorf("%s %d: unexpected warning %s", tc.gender, tc.age, res.LimitWarning.Type)
		}
		if len(report.TopImpacts) != 0 {
			t.Errorf("%s %d: expected no significant impacts, got %d", tc.gender, tc.age, len(report.TopImpacts))
		}
		if len(report.Opportunities) != 9 {
			t.Errorf("%s %d: expected 9 opportunities, got %d", tc.gender, tc.age, len(report.Opportunities))
		}
		if report.ACMStatus() != "average" {
			t.Errorf("ACM status = %s, expected average", report.ACMStatus())
		}
	}
}

// =============================================================================
// Typical Profiles
// =============================================================================

func TestScenario_ActiveNonSmoker(t *testing.T) {
	// Scenario: 45 year old woman who walks, plays badminton, drinks tea and coffee

	e := newTestEstimator()
	answers := e.Registry().DefaultAnswers()
	answers[string(FactorDailySteps)] = "high"       // -50
	answers[string(FactorRacquetSports)] = "regular" // -47
	answers[string(FactorTea)] = "daily"             // -12
	answers[string(FactorCoffee)] = "optimal"        // -17
	answers[string(FactorSitting)] = "high"          // +15

	report, err := e.Estimate(&Profile{Age: 45, Gender: Female, Answers: answers})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	if res.TotalACM != -111 {
		t.Fatalf("TotalACM = %d, expected -111", res.TotalACM)
	}
	// Floor at -99 gives 990 extra years before the cap
	if res.TotalLifespan != 115 || res.LimitWarning == nil {
		t.Errorf("Expected capped lifespan with warning, got %.1f", res.TotalLifespan)
	}

	// Sitting is the only harmful answer with advice
	if len(report.Negative) != 1 || report.Negative[0].Factor != FactorSitting {
		t.Errorf("Expected one sitting recommendation, got %+v", report.Negative)
	}
	for _, o := range report.Opportunities {
		if o.Factor == FactorDailySteps || o.Factor == FactorRacquetSports || o.Factor == FactorCoffee {
			t.Errorf("Opportunity %s already adopted", o.Factor)
		}
	}
	if len(report.Opportunities) != 6 {
		t.Errorf("Expected 6 remaining opportunities, got %d", len(report.Opportunities))
	}
}

func TestScenario_ModerateSmoker(t *testing.T) {
	// Scenario: 50 year old man, light smoker, overweight, late to bed

	e := newTestEstimator()
	answers := e.Registry().DefaultAnswers()
	answers[string(FactorSmoking)] = "light"       // +17
	answers[string(FactorWeight)] = "overweight"   // +10
	answers[string(FactorSleepTime)] = "late"      // +15
	answers[string(FactorVegetableFruit)] = "high" // -21

	report, err := e.Estimate(&Profile{Age: 50, Gender: Male, Answers: answers})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	res := report.Result

	// +21% ACM: (1/1.21 - 1) * 10 = -1.7 years
	if res.TotalACM != 21 {
		t.Errorf("TotalACM = %d, expected 21", res.TotalACM)
	}
	assertYearsEqual(t, -1.7, res.LifespanChange, "lifespan change")
	assertYearsEqual(t, 73.3, res.TotalLifespan, "total lifespan")

	want := []FactorID{FactorSmoking, FactorSleepTime, FactorWeight}
	if len(report.Negative) != len(want) {
		t.Fatalf("Expected %d recommendations, got %d", len(want), len(report.Negative))
	}
	for i, id := range want {
		if report.Negative[i].Factor != id {
			t.Errorf("Recommendation %d = %s, expected %s", i, report.Negative[i].Factor, id)
		}
	}

	if len(report.TopImpacts) != 4 || report.TopImpacts[0].Factor != FactorVegetableFruit {
		t.Errorf("Expected vegetables first among 4 significant impacts, got %+v", report.TopImpacts)
	}
}

// =============================================================================
// What-if
// =============================================================================

func TestScenario_WhatIfFindsBiggestLever(t *testing.T) {
	// Scenario: heavy smoker at baseline otherwise. Quitting removes the
	// harm outright and ranks among the largest single changes.

	e := newTestEstimator()
	answers := e.Registry().DefaultAnswers()
	answers[string(FactorSmoking)] = "heavy"

	analysis, err := e.WhatIf(&Profile{Age: 40, Gender: Male, Answers: answers})
	if err != nil {
		t.Fatalf("WhatIf failed: %v", err)
	}

	if len(analysis.Rows) != e.Registry().Len() {
		t.Fatalf("Expected one row per factor, got %d", len(analysis.Rows))
	}
	for i := 1; i < len(analysis.Rows); i++ {
		if analysis.Rows[i].BestGain > analysis.Rows[i-1].BestGain {
			t.Errorf("Rows not ordered by gain at %d", i)
		}
	}

	top := analysis.Rows[0]
	t.Logf("Top lever: %s -> %s (+%.1f years)", top.Factor, top.BestOption, top.BestGain)

	var smoking *WhatIfRow
	for i := range analysis.Rows {
		if analysis.Rows[i].Factor == FactorSmoking {
			smoking = &analysis.Rows[i]
		}
	}
	if smoking == nil {
		t.Fatal("Smoking row missing")
	}
	if smoking.BestOption != "never" {
		t.Errorf("Best smoking option = %s, expected never", smoking.BestOption)
	}
	// 75 - 3.5 = 71.5 now, 75 after quitting
	assertYearsEqual(t, 3.5, smoking.BestGain, "gain from quitting")

	for _, c := range smoking.Cells {
		if c.Current != (c.Option == "heavy") {
			t.Errorf("Cell %s current flag = %v", c.Option, c.Current)
		}
		if c.Current && c.Delta != 0 {
			t.Errorf("Current option should have zero delta, got %.1f", c.Delta)
		}
	}
}
