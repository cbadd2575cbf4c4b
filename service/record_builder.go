package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dataset-uploader/config"
	"dataset-uploader/models"

	"github.com/google/uuid"
)

// RecordBuilder turns spreadsheet rows into datasets. It has no failure
// path: unusable skill cells are left out of the record.
type RecordBuilder struct {
	skills models.ReferenceCatalog
	plan   *SchedulingPlan
	cfg    *models.RunConfig
	newID  func() string
}

// NewRecordBuilder constructs a RecordBuilder for one run.
func NewRecordBuilder(skills models.ReferenceCatalog, plan *SchedulingPlan, cfg *models.RunConfig) *RecordBuilder {
	return &RecordBuilder{skills: skills, plan: plan, cfg: cfg, newID: uuid.NewString}
}

func isFixedColumn(column string) bool {
	return column == config.PRODUCT_COLUMN ||
		column == config.LOCATION_COLUMN ||
		column == config.DESCRIPTION_COLUMN
}

// SkillColumns returns, in sheet order, the columns that name a known skill.
func SkillColumns(columns []string, skills models.ReferenceCatalog) []string {
	var out []string
	for _, col := range columns {
		if isFixedColumn(col) {
			continue
		}
		if _, ok := skills.Lookup(col); ok {
			out = append(out, col)
		}
	}
	return out
}

// ParseSkillValue reads a skill cell as a shift count. Fractions are
// truncated toward zero.
func ParseSkillValue(cell string) (int, models.SkipReason) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, models.SkipEmptyCell
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, models.SkipNonNumericCell
	}
	return int(f), models.NotSkipped
}

// BuildPatternRecord builds one time-window pattern for a row. Each usable
// skill cell yields a base entry and a target entry carrying the cell value.
func (b *RecordBuilder) BuildPatternRecord(productName string, row models.SourceRow, patternID, metricID string, window models.TimeWindow) models.DatasetPattern {
	start, end := window.Start.String(), window.End.String()

	skillIDs := []string{}
	data := []models.PatternDataEntry{}
	for _, col := range SkillColumns(row.Columns(), b.skills) {
		shifts, reason := ParseSkillValue(row.Value(col))
		if reason != models.NotSkipped {
			continue
		}
		skillID, _ := b.skills.Lookup(col)
		data = append(data,
			models.PatternDataEntry{
				ID:          b.newID(),
				SkillID:     skillID,
				Value:       config.PATTERN_BASE_VALUE,
				ShiftsCount: config.PATTERN_BASE_SHIFTS_COUNT,
			},
			models.PatternDataEntry{
				ID:          b.newID(),
				SkillID:     skillID,
				Value:       config.PATTERN_TARGET_VALUE,
				ShiftsCount: shifts,
			},
		)
		skillIDs = append(skillIDs, skillID)
	}

	return models.DatasetPattern{
		ID:          patternID,
		MetricID:    metricID,
		Name:        fmt.Sprintf("%s - %s-%s", productName, start[:5], end[:5]),
		StartTime:   start,
		EndTime:     end,
		Description: fmt.Sprintf(config.PATTERN_DESCRIPTION_FORMAT, productName),
		SkillIDs:    skillIDs,
		PatternData: data,
		ExternalID:  "",
	}
}

// BuildDatasetRecord builds the dataset of a row: always a day pattern, plus
// a night pattern in two-pattern mode when the plan has a night slot.
func (b *RecordBuilder) BuildDatasetRecord(productName, locationID string, row models.SourceRow) *models.Dataset {
	patterns := []models.DatasetPattern{
		b.BuildPatternRecord(productName, row, b.plan.DayPatternID, b.plan.MetricID, b.cfg.Day),
	}
	if b.cfg.Mode == models.TwoPatterns && b.cfg.Night != nil && b.plan.NightPatternID != "" {
		patterns = append(patterns,
			b.BuildPatternRecord(productName, row, b.plan.NightPatternID, b.plan.MetricID, *b.cfg.Night))
	}

	description := fmt.Sprintf(config.DATASET_DESCRIPTION_FORMAT, productName)
	if row.Has(config.DESCRIPTION_COLUMN) {
		if d := strings.TrimSpace(row.Value(config.DESCRIPTION_COLUMN)); d != "" {
			description = d
		}
	}

	return &models.Dataset{
		LocationID:      locationID,
		MetricID:        b.plan.MetricID,
		ForecastModelID: b.plan.ForecastModelID,
		Name:            productName,
		Description:     description,
		DatasetPatterns: patterns,
		Tags:            []string{productName},
		ExternalID:      nil,
	}
}
