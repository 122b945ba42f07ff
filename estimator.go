package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Estimator runs the full profile-to-report pipeline.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	registry   *FactorRegistry
	base       BaseLifespan
	limits     Limits
	topImpacts int
	logger     *zap.Logger
	now        func() time.Time
}

// NewEstimator creates an estimator from settings. A nil logger disables logging.
func NewEstimator(settings *Settings, logger *zap.Logger) *Estimator {
	if settings == nil {
		d := DefaultSettings()
		settings = &d
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{
		registry:   NewFactorRegistry(),
		base:       settings.Lifespan,
		limits:     settings.Limits,
		topImpacts: settings.Report.TopImpacts,
		logger:     logger,
		now:        time.Now,
	}
}

// Registry exposes the factor table for input collaborators
func (e *Estimator) Registry() *FactorRegistry {
	return e.registry
}

// Limits returns the limits in effect
func (e *Estimator) Limits() Limits {
	return e.limits
}

// Estimate validates the profile and builds a complete report
func (e *Estimator) Estimate(p *Profile) (*Report, error) {
	if p == nil {
		return nil, ValidationError{Field: "profile", Message: "profile is required"}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	impacts, err := e.registry.ResolveImpacts(p.Answers)
	if err != nil {
		return nil, err
	}

	result, err := CalculateLifespan(impacts, p.Gender, p.Age, e.base, e.limits)
	if err != nil {
		return nil, fmt.Errorf("calculating lifespan: %w", err)
	}

	negative, opportunities := GenerateRecommendations(impacts)

	report := &Report{
		ID:            uuid.New().String(),
		GeneratedAt:   e.now(),
		Profile:       *p.Clone(),
		Result:        result,
		Impacts:       impacts,
		TopImpacts:    SignificantImpacts(impacts, e.topImpacts),
		CategoryStats: GetCategoryStats(impacts),
		Negative:      negative,
		Opportunities: opportunities,
	}

	fields := []zap.Field{
		zap.String("report_id", report.ID),
		zap.Int("age", p.Age),
		zap.String("gender", p.Gender.String()),
		zap.Int("total_acm", result.TotalACM),
		zap.Float64("total_lifespan", result.TotalLifespan),
		zap.Int("negative_recommendations", len(negative)),
		zap.Int("opportunities", len(opportunities)),
	}
	if result.LimitWarning != nil {
		fields = append(fields,
			zap.String("limit", string(result.LimitWarning.Type)),
			zap.Float64("original_lifespan", result.OriginalLifespan))
	}
	e.logger.Info("estimate computed", fields...)

	return report, nil
}
