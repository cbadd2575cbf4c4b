package services

import (
	"context"
	"fmt"

	"dataset-uploader/api/targcontrol"
	"dataset-uploader/models"

	"go.uber.org/zap"
)

// Submitter performs the upload of one dataset.
type Submitter interface {
	Submit(ctx context.Context, dataset *models.Dataset) (bool, string)
}

// UploadService submits datasets to the forecaster, one attempt each.
type UploadService struct {
	api    targcontrol.TargControlAPI
	logger *zap.Logger
}

func NewUploadService(api targcontrol.TargControlAPI, logger *zap.Logger) *UploadService {
	return &UploadService{api: api, logger: logger.Named("UploadService")}
}

// Submit sends dataset and reports whether it was accepted. The dataset is
// never modified, so a caller may resubmit the same value.
func (us *UploadService) Submit(ctx context.Context, dataset *models.Dataset) (bool, string) {
	if _, err := us.api.SaveDataset(ctx, dataset); err != nil {
		subErr := &models.SubmissionError{Dataset: dataset.Name, Err: err}
		us.logger.Warn("dataset rejected", zap.String("dataset", dataset.Name), zap.Error(err))
		return false, subErr.Error()
	}
	us.logger.Info("dataset submitted", zap.String("dataset", dataset.Name))
	return true, fmt.Sprintf("dataset %q submitted", dataset.Name)
}
