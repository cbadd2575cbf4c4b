package services

import (
	"context"
	"errors"
	"testing"

	"dataset-uploader/api/targcontrol"
	"dataset-uploader/config"
	"dataset-uploader/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConstantSchedulingConfig(t *testing.T) {
	single, err := NewConstantSchedulingConfig(runConfig(t, 1, models.ConstantVariant)).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.METRIC_ID, single.MetricID)
	assert.Equal(t, config.FORECAST_MODEL_ID, single.ForecastModelID)
	assert.Equal(t, config.PATTERN_DAY_ID, single.DayPatternID)
	assert.Empty(t, single.NightPatternID)

	two, err := NewConstantSchedulingConfig(runConfig(t, 2, models.ConstantVariant)).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.PATTERN_NIGHT_ID, two.NightPatternID)
}

func catalogPlan(t *testing.T, fixture models.ReferenceFixture, cfg *models.RunConfig) (*SchedulingPlan, error) {
	t.Helper()
	mock := targcontrol.NewTargControlApiClientMock(fixture)
	refs := NewReferenceService(mock, zap.NewNop())
	return NewSchedulingConfig(cfg, refs, zap.NewNop()).Resolve(context.Background())
}

func TestCatalogSchedulingConfig_PicksFirstMetricAndUnboundPatterns(t *testing.T) {
	plan, err := catalogPlan(t, defaultFixture(), runConfig(t, 2, models.CatalogVariant))

	require.NoError(t, err)
	assert.Equal(t, "m-1", plan.MetricID)
	assert.Equal(t, config.FORECAST_MODEL_ID, plan.ForecastModelID)
	assert.Equal(t, "p-1", plan.DayPatternID)
	assert.Equal(t, "p-2", plan.NightPatternID)
	assert.Empty(t, plan.Warnings)
}

func TestCatalogSchedulingConfig_MetricByName(t *testing.T) {
	cfg := runConfig(t, 1, models.CatalogVariant)
	cfg.MetricName = "Нагрузка"

	plan, err := catalogPlan(t, defaultFixture(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "m-2", plan.MetricID)
	assert.Empty(t, plan.NightPatternID)
}

func TestCatalogSchedulingConfig_UnknownMetricListsAvailable(t *testing.T) {
	cfg := runConfig(t, 1, models.CatalogVariant)
	cfg.MetricName = "Нет"

	_, err := catalogPlan(t, defaultFixture(), cfg)

	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "Выпуск, Нагрузка")
}

func TestCatalogSchedulingConfig_NoMetrics(t *testing.T) {
	fixture := defaultFixture()
	fixture.Metrics = nil

	_, err := catalogPlan(t, fixture, runConfig(t, 1, models.CatalogVariant))

	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "no metrics found")
}

func TestCatalogSchedulingConfig_NoAvailablePatterns(t *testing.T) {
	fixture := defaultFixture()
	fixture.Patterns = fixture.Patterns[:1]

	_, err := catalogPlan(t, fixture, runConfig(t, 1, models.CatalogVariant))

	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "no available patterns")
}

func TestCatalogSchedulingConfig_SingleSlotInTwoPatternMode(t *testing.T) {
	fixture := defaultFixture()
	fixture.Patterns = fixture.Patterns[:2]

	t.Run("fail policy", func(t *testing.T) {
		_, err := catalogPlan(t, fixture, runConfig(t, 2, models.CatalogVariant))

		var cfgErr *models.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "found 1")
	})

	t.Run("degrade policy", func(t *testing.T) {
		cfg := runConfig(t, 2, models.CatalogVariant)
		cfg.NightSlotPolicy = models.NightSlotDegrade

		plan, err := catalogPlan(t, fixture, cfg)

		require.NoError(t, err)
		assert.Equal(t, "p-1", plan.DayPatternID)
		assert.Empty(t, plan.NightPatternID)
		require.Len(t, plan.Warnings, 1)
	})
}
