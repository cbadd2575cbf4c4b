package services

import (
	"context"
	"errors"
	"fmt"

	"dataset-uploader/config"
	"dataset-uploader/models"

	"go.uber.org/zap"
)

// SchedulingPlan holds the ids every dataset of a run refers to.
// NightPatternID is empty when only the day pattern is built.
type SchedulingPlan struct {
	MetricID        string
	ForecastModelID string
	DayPatternID    string
	NightPatternID  string
	Warnings        []string
}

// SchedulingConfig resolves the metric and pattern slots of a run.
type SchedulingConfig interface {
	Resolve(ctx context.Context) (*SchedulingPlan, error)
}

// NewSchedulingConfig picks the implementation for cfg.Variant.
func NewSchedulingConfig(cfg *models.RunConfig, refs *ReferenceService, logger *zap.Logger) SchedulingConfig {
	if cfg.Variant == models.CatalogVariant {
		return NewCatalogSchedulingConfig(cfg, refs, logger)
	}
	return NewConstantSchedulingConfig(cfg)
}

// ConstantSchedulingConfig uses the well-known metric and pattern ids.
type ConstantSchedulingConfig struct {
	cfg *models.RunConfig
}

func NewConstantSchedulingConfig(cfg *models.RunConfig) *ConstantSchedulingConfig {
	return &ConstantSchedulingConfig{cfg: cfg}
}

func (c *ConstantSchedulingConfig) Resolve(ctx context.Context) (*SchedulingPlan, error) {
	plan := &SchedulingPlan{
		MetricID:        config.METRIC_ID,
		ForecastModelID: config.FORECAST_MODEL_ID,
		DayPatternID:    config.PATTERN_DAY_ID,
	}
	if c.cfg.Mode == models.TwoPatterns {
		plan.NightPatternID = config.PATTERN_NIGHT_ID
	}
	return plan, nil
}

// CatalogSchedulingConfig resolves the operator's metric by name and takes
// pattern slots from the templates not yet bound to a dataset.
type CatalogSchedulingConfig struct {
	cfg    *models.RunConfig
	refs   *ReferenceService
	logger *zap.Logger
}

func NewCatalogSchedulingConfig(cfg *models.RunConfig, refs *ReferenceService, logger *zap.Logger) *CatalogSchedulingConfig {
	return &CatalogSchedulingConfig{cfg: cfg, refs: refs, logger: logger.Named("CatalogSchedulingConfig")}
}

func (c *CatalogSchedulingConfig) Resolve(ctx context.Context) (*SchedulingPlan, error) {
	plan := &SchedulingPlan{ForecastModelID: config.FORECAST_MODEL_ID}

	metrics, err := c.refs.FetchMetrics(ctx)
	if err != nil {
		plan.Warnings = append(plan.Warnings, err.Error())
	}
	if metrics.IsEmpty() {
		return nil, &models.ConfigurationError{Reason: "no metrics found", Err: err}
	}
	metricID, err := selectMetric(metrics, c.cfg.MetricName)
	if err != nil {
		return nil, err
	}
	plan.MetricID = metricID

	slots, err := c.refs.FetchAvailablePatterns(ctx)
	if err != nil {
		plan.Warnings = append(plan.Warnings, err.Error())
	}
	if len(slots) == 0 {
		return nil, &models.ConfigurationError{Reason: "no available patterns found", Err: err}
	}
	plan.DayPatternID = slots[0]

	if c.cfg.Mode == models.TwoPatterns {
		if len(slots) >= 2 {
			plan.NightPatternID = slots[1]
		} else if c.cfg.NightSlotPolicy == models.NightSlotDegrade {
			msg := "only one available pattern, night pattern is omitted"
			c.logger.Warn(msg)
			plan.Warnings = append(plan.Warnings, msg)
		} else {
			return nil, &models.ConfigurationError{Reason: fmt.Sprintf(
				"two-pattern mode needs 2 available patterns, found %d", len(slots))}
		}
	}

	c.logger.Info("resolved scheduling plan",
		zap.String("metric_id", plan.MetricID),
		zap.String("day_pattern_id", plan.DayPatternID),
		zap.String("night_pattern_id", plan.NightPatternID))
	return plan, nil
}

// selectMetric returns the id of name, or of the first metric when name is
// empty.
func selectMetric(metrics models.ReferenceCatalog, name string) (string, error) {
	if name == "" {
		first := metrics.Names()[0]
		id, _ := metrics.Lookup(first)
		return id, nil
	}
	id, ok := metrics.Lookup(name)
	if !ok {
		return "", &models.ConfigurationError{
			Reason: fmt.Sprintf("metric %q not found", name),
			Err:    errors.New("available metrics: " + joinNames(metrics.Names())),
		}
	}
	return id, nil
}
