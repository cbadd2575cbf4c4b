package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"dataset-uploader/config"
	"dataset-uploader/models"
	services "dataset-uploader/service"
	"dataset-uploader/util"

	"go.uber.org/zap"
)

// Form fields of POST /v1/batches
const (
	API_KEY_FIELD           = "api_key"
	DOMAIN_FIELD            = "domain"
	FILE_FIELD              = "file"
	PATTERN_COUNT_FIELD     = "pattern_count"
	START_TIME_DAY_FIELD    = "start_time_day"
	END_TIME_DAY_FIELD      = "end_time_day"
	START_TIME_NIGHT_FIELD  = "start_time_night"
	END_TIME_NIGHT_FIELD    = "end_time_night"
	VARIANT_FIELD           = "variant"
	METRIC_FIELD            = "metric"
	NIGHT_SLOT_POLICY_FIELD = "night_slot_policy"
	FORMAT_FIELD            = "format"
)

// BatchRunner executes batch runs and catalog listings.
type BatchRunner interface {
	Run(ctx context.Context, cfg *models.RunConfig, file io.Reader, progress services.ProgressFunc) (*models.BatchReport, error)
	Catalog(ctx context.Context, domain, apiKey string) (*models.CatalogListing, error)
}

type BatchHandler struct {
	runner   BatchRunner
	settings config.Settings
	logger   *zap.Logger
}

// NewBatchHandler creates a handler whose form defaults come from settings.
// The API key is never defaulted from settings.
func NewBatchHandler(runner BatchRunner, settings config.Settings, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{runner: runner, settings: settings, logger: logger.Named("BatchHandler")}
}

func (h *BatchHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MAX_UPLOAD_SIZE_BYTES)
	if err := r.ParseMultipartForm(config.MAX_UPLOAD_SIZE_BYTES); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	cfg, err := h.parseRunConfig(r)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	file, header, err := r.FormFile(FILE_FIELD)
	if err != nil {
		writeError(w, http.StatusBadRequest, "spreadsheet file is required in field "+FILE_FIELD)
		return
	}
	defer file.Close()

	logger := h.logger.With(zap.String("domain", cfg.Domain), zap.String("file", header.Filename))
	logger.Info("batch submitted")

	report, err := h.runner.Run(r.Context(), cfg, file, func(done, total int) {
		logger.Debug("batch progress", zap.Int("done", done), zap.Int("total", total))
	})
	if err != nil {
		logger.Warn("batch refused", zap.Error(err))
		h.writeRunError(w, err)
		return
	}

	if strings.EqualFold(r.FormValue(FORMAT_FIELD), "html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := util.PlotBatchReport(report, w); err != nil {
			logger.Error("failed to render report", zap.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *BatchHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	domain := vals.Get(DOMAIN_FIELD)
	if domain == "" {
		domain = h.settings.Domain
	}

	// The key travels in a header so it never reaches the access log.
	listing, err := h.runner.Catalog(r.Context(), domain, r.Header.Get(config.TARGCONTROL_API_KEY_HEADER))
	if err != nil {
		h.logger.Warn("catalog listing failed", zap.String("domain", domain), zap.Error(err))
		h.writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// Ping handles GET /ping
func (h *BatchHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// parseRunConfig reads the form fields, falling back to the settings defaults
// for everything except the API key.
func (h *BatchHandler) parseRunConfig(r *http.Request) (*models.RunConfig, error) {
	in := h.settings.RunConfigInput()
	in.APIKey = r.FormValue(API_KEY_FIELD)

	setString := func(field string, dst *string) {
		if v := strings.TrimSpace(r.FormValue(field)); v != "" {
			*dst = v
		}
	}
	setString(DOMAIN_FIELD, &in.Domain)
	setString(START_TIME_DAY_FIELD, &in.StartDay)
	setString(END_TIME_DAY_FIELD, &in.EndDay)
	setString(START_TIME_NIGHT_FIELD, &in.StartNight)
	setString(END_TIME_NIGHT_FIELD, &in.EndNight)
	setString(VARIANT_FIELD, &in.Variant)
	setString(METRIC_FIELD, &in.MetricName)
	setString(NIGHT_SLOT_POLICY_FIELD, &in.NightSlotPolicy)

	if v := strings.TrimSpace(r.FormValue(PATTERN_COUNT_FIELD)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &models.ConfigurationError{Reason: "invalid " + PATTERN_COUNT_FIELD + " " + strconv.Quote(v)}
		}
		in.PatternCount = n
	}
	return models.NewRunConfig(in)
}

func (h *BatchHandler) writeRunError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// statusFor maps run errors to response codes.
func statusFor(err error) int {
	var (
		cfgErr *models.ConfigurationError
		rowErr *models.RowValidationError
		refErr *models.ReferenceDataError
	)
	switch {
	case errors.Is(err, services.ErrRunInProgress):
		return http.StatusConflict
	case errors.As(err, &cfgErr), errors.As(err, &rowErr):
		return http.StatusBadRequest
	case errors.As(err, &refErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
