package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"dataset-uploader/config"
	"dataset-uploader/models"

	"go.uber.org/zap"
)

// ProgressFunc is called after each row is resolved with the number of rows
// dispatched so far and the total.
type ProgressFunc func(done, total int)

// BatchProcessor walks the rows of a sheet in file order and resolves each
// one completely before the next.
type BatchProcessor struct {
	builder   *RecordBuilder
	submitter Submitter
	locations models.ReferenceCatalog
	logger    *zap.Logger
}

func NewBatchProcessor(builder *RecordBuilder, submitter Submitter, locations models.ReferenceCatalog, logger *zap.Logger) *BatchProcessor {
	return &BatchProcessor{
		builder:   builder,
		submitter: submitter,
		locations: locations,
		logger:    logger.Named("BatchProcessor"),
	}
}

// ResolveProduct reads the product cell.
func ResolveProduct(row models.SourceRow) (string, models.SkipReason) {
	v := row.Value(config.PRODUCT_COLUMN)
	if !utf8.ValidString(v) {
		return "", models.SkipUnparseableProduct
	}
	if strings.TrimSpace(v) == "" {
		return "", models.SkipMissingProduct
	}
	return v, models.NotSkipped
}

// ResolveLocation matches the location cell exactly against the catalog and
// returns the cell text and the location id.
func ResolveLocation(row models.SourceRow, locations models.ReferenceCatalog) (string, string, models.SkipReason) {
	name := row.Value(config.LOCATION_COLUMN)
	if !utf8.ValidString(name) {
		return "", "", models.SkipUnparseableLocation
	}
	if strings.TrimSpace(name) == "" {
		return name, "", models.SkipMissingLocation
	}
	id, ok := locations.Lookup(name)
	if !ok {
		return name, "", models.SkipUnmatchedLocation
	}
	return name, id, models.NotSkipped
}

// Process handles every row of sheet and returns the accumulated report.
func (bp *BatchProcessor) Process(ctx context.Context, sheet *models.Sheet, progress ProgressFunc) *models.BatchReport {
	report := &models.BatchReport{Total: len(sheet.Rows), Outcomes: []models.BatchOutcome{}}

	for _, row := range sheet.Rows {
		outcome := bp.processRow(ctx, row)
		report.Record(outcome)

		fields := []zap.Field{
			zap.Int("row", outcome.Row),
			zap.String("product", outcome.Product),
			zap.String("location", outcome.Location),
			zap.String("state", string(outcome.State)),
		}
		switch outcome.State {
		case models.StateSuccess:
			bp.logger.Info(outcome.Message, fields...)
		default:
			bp.logger.Warn(outcome.Message, append(fields, zap.String("reason", string(outcome.Reason)))...)
		}

		if progress != nil {
			progress(report.Dispatched, report.Total)
		}
	}

	bp.logger.Info("batch finished",
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped))
	return report
}

func (bp *BatchProcessor) processRow(ctx context.Context, row models.SourceRow) models.BatchOutcome {
	outcome := models.BatchOutcome{Row: row.Number, State: models.StatePending}

	product, reason := ResolveProduct(row)
	if reason != models.NotSkipped {
		return skipped(outcome, reason, fmt.Sprintf("row %d: product name is missing or invalid, skipping", row.Number))
	}
	outcome.Product = product

	locationName, locationID, reason := ResolveLocation(row, bp.locations)
	outcome.Location = locationName
	switch reason {
	case models.NotSkipped:
	case models.SkipUnmatchedLocation:
		return skipped(outcome, reason, fmt.Sprintf(
			"row %d: location %q not found in the location catalog, skipping", row.Number, locationName))
	default:
		return skipped(outcome, reason, fmt.Sprintf(
			"row %d: invalid location value %q, skipping", row.Number, locationName))
	}
	outcome.State = models.StateLocationResolved

	dataset := bp.builder.BuildDatasetRecord(product, locationID, row)
	outcome.State = models.StateRecordBuilt

	ok, msg := bp.submitter.Submit(ctx, dataset)
	outcome.State = models.StateSubmitted
	outcome.Message = fmt.Sprintf("row %d: %s", row.Number, msg)
	if !ok {
		outcome.State = models.StateFailed
		outcome.Reason = models.ReasonSubmissionFailed
		return outcome
	}
	outcome.State = models.StateSuccess
	outcome.Success = true
	return outcome
}

func skipped(o models.BatchOutcome, reason models.SkipReason, msg string) models.BatchOutcome {
	o.State = models.StateSkipped
	o.Reason = reason
	o.Message = msg
	return o
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
