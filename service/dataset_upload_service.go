package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"dataset-uploader/api/targcontrol"
	"dataset-uploader/config"
	"dataset-uploader/models"
	"dataset-uploader/util"

	"go.uber.org/zap"
)

// DatasetUploadService runs whole batches: it validates the input, fetches
// the reference data and drives the BatchProcessor.
type DatasetUploadService struct {
	newAPI targcontrol.Factory
	lock   RunLock
	logger *zap.Logger
}

// NewDatasetUploadService constructs a DatasetUploadService. newAPI is
// called once per run with the run's domain and credential.
func NewDatasetUploadService(newAPI targcontrol.Factory, lock RunLock, logger *zap.Logger) *DatasetUploadService {
	return &DatasetUploadService{newAPI: newAPI, lock: lock, logger: logger.Named("DatasetUploadService")}
}

// Run decodes the spreadsheet in file and uploads one dataset per valid row.
// Every error returned happens before the first row is processed; per-row
// problems are reported in the BatchReport. Once rows are being processed the
// run is not cancelled by ctx.
func (s *DatasetUploadService) Run(ctx context.Context, cfg *models.RunConfig, file io.Reader, progress ProgressFunc) (*models.BatchReport, error) {
	sheet, err := util.ReadSheet(file)
	if err != nil {
		return nil, &models.RowValidationError{Reason: "failed to read spreadsheet, expected .xlsx", Err: err}
	}
	return s.RunSheet(ctx, cfg, sheet, progress)
}

// RunSheet is Run over an already decoded sheet.
func (s *DatasetUploadService) RunSheet(ctx context.Context, cfg *models.RunConfig, sheet *models.Sheet, progress ProgressFunc) (*models.BatchReport, error) {
	logger := s.logger.With(zap.String("domain", cfg.Domain))

	if missing := sheet.MissingColumns(config.RequiredColumns()...); len(missing) > 0 {
		return nil, &models.RowValidationError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}

	acquired, err := s.lock.Acquire(cfg.Domain)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, &models.ConfigurationError{Reason: "run refused", Err: ErrRunInProgress}
	}
	defer func() {
		if err := s.lock.Release(cfg.Domain); err != nil {
			logger.Error("failed to release run lock", zap.Error(err))
		}
	}()

	api := s.newAPI(cfg.Domain, cfg.APIKey)
	refs := NewReferenceService(api, logger)

	catalogs, warnings, err := refs.LoadCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := NewSchedulingConfig(cfg, refs, logger).Resolve(ctx)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, plan.Warnings...)

	available := catalogs.Locations.Names()
	logger.Info("available locations", zap.Strings("locations", available))

	matched := SkillColumns(sheet.Columns, catalogs.Skills)
	if len(matched) == 0 {
		msg := "no skill columns of the spreadsheet match the skill catalog; check column names"
		logger.Warn(msg)
		warnings = append(warnings, msg)
	} else {
		logger.Info("matched skill columns", zap.Strings("skills", matched))
	}

	builder := NewRecordBuilder(catalogs.Skills, plan, cfg)
	processor := NewBatchProcessor(builder, NewUploadService(api, logger), catalogs.Locations, logger)

	report := processor.Process(context.WithoutCancel(ctx), sheet, func(done, total int) {
		if err := s.lock.Refresh(cfg.Domain); err != nil {
			logger.Warn("failed to refresh run lock", zap.Int("row", done), zap.Error(err))
		}
		if progress != nil {
			progress(done, total)
		}
	})
	report.AvailableLocations = available
	report.MatchedSkills = matched
	if report.MatchedSkills == nil {
		report.MatchedSkills = []string{}
	}
	report.Warnings = append(report.Warnings, warnings...)
	return report, nil
}

// Catalog lists the reference data visible with the given credential.
func (s *DatasetUploadService) Catalog(ctx context.Context, domain, apiKey string) (*models.CatalogListing, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &models.ConfigurationError{Reason: "API key is required"}
	}
	domain, err := models.NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	refs := NewReferenceService(s.newAPI(domain, apiKey), s.logger)
	listing := refs.Listing(ctx)
	if len(listing.Locations) == 0 && len(listing.Warnings) > 0 {
		return listing, &models.ReferenceDataError{Resource: "catalog", Err: errors.New(strings.Join(listing.Warnings, "; "))}
	}
	return listing, nil
}
