package services

import (
	"context"
	"testing"

	"dataset-uploader/config"
	"dataset-uploader/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"Продукция", "Локация", "Описание", "Навык1", "Навык2", "Неизвестный"}

func newTestBuilder(t *testing.T, patterns int) *RecordBuilder {
	t.Helper()
	cfg := runConfig(t, patterns, models.ConstantVariant)
	plan, err := NewConstantSchedulingConfig(cfg).Resolve(context.Background())
	require.NoError(t, err)
	b := NewRecordBuilder(catalogOf("Навык1", "skill-1", "Навык2", "skill-2"), plan, cfg)
	b.newID = sequentialIDs()
	return b
}

func TestParseSkillValue(t *testing.T) {
	tests := []struct {
		cell   string
		want   int
		reason models.SkipReason
	}{
		{"5", 5, models.NotSkipped},
		{"0", 0, models.NotSkipped},
		{"5.0", 5, models.NotSkipped},
		{"5.9", 5, models.NotSkipped},
		{" 7 ", 7, models.NotSkipped},
		{"-2", -2, models.NotSkipped},
		{"", 0, models.SkipEmptyCell},
		{"   ", 0, models.SkipEmptyCell},
		{"abc", 0, models.SkipNonNumericCell},
		{"NaN", 0, models.SkipNonNumericCell},
		{"inf", 0, models.SkipNonNumericCell},
		{"1e20", 0, models.SkipNonNumericCell},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, reason := ParseSkillValue(tt.cell)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillColumns_ExcludesFixedAndUnknownColumns(t *testing.T) {
	skills := catalogOf("Навык1", "skill-1", "Навык2", "skill-2", "Локация", "skill-x", "Описание", "skill-y")

	got := SkillColumns(columns, skills)

	assert.Equal(t, []string{"Навык1", "Навык2"}, got)
}

func TestBuildPatternRecord_NumericSkillYieldsBaseAndTarget(t *testing.T) {
	b := newTestBuilder(t, 1)
	row := models.NewSourceRow(2, columns, map[string]string{
		"Продукция": "Продукт А", "Локация": "Линия 1", "Навык1": "5", "Навык2": "3",
	})

	p := b.BuildPatternRecord("Продукт А", row, "pattern-1", "metric-1", b.cfg.Day)

	assert.Equal(t, "pattern-1", p.ID)
	assert.Equal(t, "metric-1", p.MetricID)
	assert.Nil(t, p.DatasetID)
	assert.Equal(t, "Продукт А - 08:00-20:00", p.Name)
	assert.Equal(t, "08:00:00", p.StartTime)
	assert.Equal(t, "20:00:00", p.EndTime)
	assert.Equal(t, "Pattern for Продукт А", p.Description)
	assert.Equal(t, []string{"skill-1", "skill-2"}, p.SkillIDs)
	assert.Equal(t, []models.PatternDataEntry{
		{ID: "entry-1", SkillID: "skill-1", Value: 10, ShiftsCount: 0},
		{ID: "entry-2", SkillID: "skill-1", Value: 20, ShiftsCount: 5},
		{ID: "entry-3", SkillID: "skill-2", Value: 10, ShiftsCount: 0},
		{ID: "entry-4", SkillID: "skill-2", Value: 20, ShiftsCount: 3},
	}, p.PatternData)
}

func TestBuildPatternRecord_EmptyAndNonNumericCellsAreLeftOut(t *testing.T) {
	b := newTestBuilder(t, 1)

	for _, cell := range []string{"", "abc"} {
		row := models.NewSourceRow(2, columns, map[string]string{
			"Продукция": "Продукт А", "Локация": "Линия 1", "Навык1": cell, "Навык2": "4",
		})

		p := b.BuildPatternRecord("Продукт А", row, "pattern-1", "metric-1", b.cfg.Day)

		assert.Equal(t, []string{"skill-2"}, p.SkillIDs, "cell %q", cell)
		require.Len(t, p.PatternData, 2)
		for _, e := range p.PatternData {
			assert.Equal(t, "skill-2", e.SkillID)
		}
	}
}

func TestBuildPatternRecord_NoSkillsGivesEmptyLists(t *testing.T) {
	b := newTestBuilder(t, 1)
	row := models.NewSourceRow(2, []string{"Продукция", "Локация"}, map[string]string{
		"Продукция": "Продукт А", "Локация": "Линия 1",
	})

	p := b.BuildPatternRecord("Продукт А", row, "pattern-1", "metric-1", b.cfg.Day)

	assert.NotNil(t, p.SkillIDs)
	assert.Empty(t, p.SkillIDs)
	assert.NotNil(t, p.PatternData)
	assert.Empty(t, p.PatternData)
}

func TestBuildDatasetRecord_SinglePattern(t *testing.T) {
	b := newTestBuilder(t, 1)
	row := models.NewSourceRow(2, columns, map[string]string{
		"Продукция": "Продукт А", "Локация": "Линия 1", "Навык1": "5",
	})

	d := b.BuildDatasetRecord("Продукт А", "loc-1", row)

	assert.Equal(t, "loc-1", d.LocationID)
	assert.Equal(t, config.METRIC_ID, d.MetricID)
	assert.Equal(t, config.FORECAST_MODEL_ID, d.ForecastModelID)
	assert.Equal(t, "Продукт А", d.Name)
	assert.Equal(t, "Dataset for Продукт А", d.Description)
	assert.Equal(t, []string{"Продукт А"}, d.Tags)
	assert.Nil(t, d.ExternalID)
	require.Len(t, d.DatasetPatterns, 1)
	assert.Equal(t, config.PATTERN_DAY_ID, d.DatasetPatterns[0].ID)
}

func TestBuildDatasetRecord_TwoPatterns(t *testing.T) {
	b := newTestBuilder(t, 2)
	row := models.NewSourceRow(2, columns, map[string]string{
		"Продукция": "Продукт А", "Локация": "Линия 1", "Навык1": "5",
	})

	d := b.BuildDatasetRecord("Продукт А", "loc-1", row)

	require.Len(t, d.DatasetPatterns, 2)
	assert.Equal(t, "Продукт А - 08:00-20:00", d.DatasetPatterns[0].Name)
	assert.Equal(t, config.PATTERN_DAY_ID, d.DatasetPatterns[0].ID)
	assert.Equal(t, "Продукт А - 20:00-08:00", d.DatasetPatterns[1].Name)
	assert.Equal(t, config.PATTERN_NIGHT_ID, d.DatasetPatterns[1].ID)
	assert.Equal(t, "20:00:00", d.DatasetPatterns[1].StartTime)
	assert.Equal(t, "08:00:00", d.DatasetPatterns[1].EndTime)
}

func TestBuildDatasetRecord_TwoPatternsWithoutNightSlot(t *testing.T) {
	b := newTestBuilder(t, 2)
	b.plan = &SchedulingPlan{MetricID: "m-1", ForecastModelID: "fm-1", DayPatternID: "p-1"}
	row := models.NewSourceRow(2, columns, map[string]string{"Продукция": "Продукт А", "Локация": "Линия 1"})

	d := b.BuildDatasetRecord("Продукт А", "loc-1", row)

	require.Len(t, d.DatasetPatterns, 1)
	assert.Equal(t, "p-1", d.DatasetPatterns[0].ID)
}

func TestBuildDatasetRecord_DescriptionColumn(t *testing.T) {
	b := newTestBuilder(t, 1)

	row := models.NewSourceRow(2, columns, map[string]string{
		"Продукция": "Продукт А", "Локация": "Линия 1", "Описание": "Ночная смена",
	})
	assert.Equal(t, "Ночная смена", b.BuildDatasetRecord("Продукт А", "loc-1", row).Description)

	blank := models.NewSourceRow(3, columns, map[string]string{
		"Продукция": "Продукт Б", "Локация": "Линия 1", "Описание": "  ",
	})
	assert.Equal(t, "Dataset for Продукт Б", b.BuildDatasetRecord("Продукт Б", "loc-1", blank).Description)
}
