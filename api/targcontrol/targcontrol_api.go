package targcontrol

import (
	"context"
	"encoding/json"

	"dataset-uploader/models"
)

// TargControlAPI defines the interface for interacting with the TargControl
// external API.
type TargControlAPI interface {
	GetLocations(ctx context.Context, page, size int) (*models.LocationsPage, error)
	GetSkills(ctx context.Context) ([]models.Skill, error)
	GetPatterns(ctx context.Context) ([]models.PatternTemplate, error)
	GetMetrics(ctx context.Context) ([]models.Metric, error)
	SaveDataset(ctx context.Context, dataset *models.Dataset) (json.RawMessage, error)
}

// Factory builds an API client for one run's domain and credential.
type Factory func(domain, apiKey string) TargControlAPI
