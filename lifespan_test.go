package main

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// Tolerance for lifespan comparisons (years)
const yearsTolerance = 0.05

func assertYearsEqual(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > yearsTolerance {
		t.Errorf("%s: expected %.2f years, got %.2f (diff: %.3f)", description, expected, actual, actual-expected)
	}
}

// =============================================================================
// ACM Transform
// =============================================================================

func TestAcmToLifespanChange(t *testing.T) {
	tests := []struct {
		acm      float64
		expected float64
	}{
		{0, 0},
		{-10, 1.111},
		{10, -0.909},
		{-50, 10},
		{50, -3.333},
		{100, -5},
		{-99, 990},
	}

	for _, tc := range tests {
		got, err := AcmToLifespanChange(tc.acm)
		if err != nil {
			t.Fatalf("ACM %.0f: unexpected error %v", tc.acm, err)
		}
		if math.Abs(got-tc.expected) > 0.001 {
			t.Errorf("ACM %.0f%%: expected %.3f years, got %.3f", tc.acm, tc.expected, got)
		}
	}
}

func TestAcmToLifespanChangeDomain(t *testing.T) {
	for _, acm := range []float64{-100, -100.5, -250} {
		_, err := AcmToLifespanChange(acm)
		var de DomainError
		if !errors.As(err, &de) {
			t.Errorf("ACM %.1f: expected DomainError, got %v", acm, err)
			continue
		}
		if de.Value != acm {
			t.Errorf("DomainError value = %.1f, expected %.1f", de.Value, acm)
		}
	}
}

// =============================================================================
// Limits
// =============================================================================

func TestApplyLifespanLimits(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name     string
		lifespan float64
		age      int
		expected float64
	}{
		{"within range", 80, 40, 80},
		{"capped at realistic max", 200, 30, 115},
		{"exactly realistic max", 115, 30, 115},
		{"below current age", 20, 30, 31},
		{"equal to current age", 60, 60, 61},
		{"theoretical minimum", 10, 5, 30},
		{"old age near cap", 90, 114, 115},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyLifespanLimits(tc.lifespan, tc.age, limits)
			assertYearsEqual(t, tc.expected, got, tc.name)
		})
	}
}

// =============================================================================
// Rounding
// =============================================================================

func TestRound1(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{1.25, 1.3},
		{0.75, 0.8},
		{-1.25, -1.2},
		{72.16, 72.2},
		{72.14, 72.1},
		{0, 0},
	}
	for _, tc := range tests {
		if got := round1(tc.in); got != tc.expected {
			t.Errorf("round1(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestFormatYears(t *testing.T) {
	if got := formatYears(115); got != "115" {
		t.Errorf("formatYears(115) = %q", got)
	}
	if got := formatYears(72.2); got != "72.2" {
		t.Errorf("formatYears(72.2) = %q", got)
	}
}

// =============================================================================
// CalculateLifespan
// =============================================================================

func TestCalculateLifespan(t *testing.T) {
	base := DefaultBaseLifespan()
	limits := DefaultLimits()

	tests := []struct {
		name          string
		values        []int
		gender        Gender
		age           int
		wantTotal     float64
		wantRemaining float64
		wantChange    float64
		wantWarning   LimitType
	}{
		{"no impacts male", nil, Male, 30, 75, 45, 0, ""},
		{"no impacts female", nil, Female, 30, 80, 50, 0, ""},
		{"10 percent lower mortality", []int{-7, -3}, Male, 30, 76.1, 46.1, 1.1, ""},
		{"smoker", []int{54}, Female, 50, 76.5, 26.5, -3.5, ""},
		{"past baseline", nil, Male, 90, 91, 1, 0, LimitMin},
		{"extreme protection", []int{-95}, Male, 30, 115, 85, 190, LimitMax},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			impacts := make([]Impact, len(tc.values))
			for i, v := range tc.values {
				impacts[i] = Impact{Value: v}
			}

			res, err := CalculateLifespan(impacts, tc.gender, tc.age, base, limits)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			assertYearsEqual(t, tc.wantTotal, res.TotalLifespan, "total lifespan")
			assertYearsEqual(t, tc.wantRemaining, res.RemainingYears, "remaining years")
			assertYearsEqual(t, tc.wantChange, res.LifespanChange, "lifespan change")

			if tc.wantWarning == "" {
				if res.LimitWarning != nil {
					t.Errorf("Unexpected %s warning: %s", res.LimitWarning.Type, res.LimitWarning.Message)
				}
				return
			}
			if res.LimitWarning == nil {
				t.Fatalf("Expected %s warning, got none", tc.wantWarning)
			}
			if res.LimitWarning.Type != tc.wantWarning {
				t.Errorf("Warning type = %s, expected %s", res.LimitWarning.Type, tc.wantWarning)
			}
			if res.LimitWarning.Message == "" || res.LimitWarning.MessageEN == "" {
				t.Error("Warning messages should be set in both languages")
			}
		})
	}
}

func TestCalculateLifespanFloorsACM(t *testing.T) {
	impacts := []Impact{{Value: -120}, {Value: -30}}

	res, err := CalculateLifespan(impacts, Male, 30, DefaultBaseLifespan(), DefaultLimits())
	if err != nil {
		t.Fatalf("ACM below -100 should be floored, got error: %v", err)
	}
	if res.TotalACM != -150 {
		t.Errorf("TotalACM should stay unclamped: expected -150, got %d", res.TotalACM)
	}
	if res.EffectiveACM != -99 {
		t.Errorf("EffectiveACM expected -99, got %d", res.EffectiveACM)
	}
	if res.TotalLifespan != 115 {
		t.Errorf("Expected lifespan capped at 115, got %.1f", res.TotalLifespan)
	}

	w := res.LimitWarning
	if w == nil || w.Type != LimitMax {
		t.Fatalf("Expected max warning, got %+v", w)
	}
	// 75 + 990 years before the cap
	if !strings.Contains(w.Message, "1065") || !strings.Contains(w.Message, "115") {
		t.Errorf("Max warning should quote the raw and capped values: %s", w.Message)
	}
	assertYearsEqual(t, 1065, w.OriginalValue, "original value")
}

func TestCalculateLifespanCustomLimits(t *testing.T) {
	limits := DefaultLimits()
	limits.RealisticMax = 100
	base := BaseLifespan{Male: 90, Female: 95}

	res, err := CalculateLifespan([]Impact{{Value: -20}}, Female, 40, base, limits)
	if err != nil {
		t.Fatal(err)
	}
	// 95 + 2.5 = 97.5 is under the custom cap
	assertYearsEqual(t, 97.5, res.TotalLifespan, "custom baseline")

	res, err = CalculateLifespan([]Impact{{Value: -50}}, Female, 40, base, limits)
	if err != nil {
		t.Fatal(err)
	}
	assertYearsEqual(t, 100, res.TotalLifespan, "custom cap")
}
