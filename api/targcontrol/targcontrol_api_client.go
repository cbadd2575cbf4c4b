package targcontrol

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"dataset-uploader/api"
	"dataset-uploader/config"
	"dataset-uploader/models"
)

// TargControlApiClient embeds the common HTTPClient and attaches the API key
// to every request.
type TargControlApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewTargControlApiClient creates a new instance of TargControlApiClient
func NewTargControlApiClient(httpClient *api.HTTPClient, apiKey string) *TargControlApiClient {
	return &TargControlApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

func (c *TargControlApiClient) headers() map[string]string {
	return map[string]string{config.TARGCONTROL_API_KEY_HEADER: c.apiKey}
}

// GetLocations retrieves one page of locations.
func (c *TargControlApiClient) GetLocations(ctx context.Context, page, size int) (*models.LocationsPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var response models.LocationsPage
	if err := c.Request(ctx, "GET", config.LOCATIONS_ENDPOINT, query, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetSkills retrieves every employee skill.
func (c *TargControlApiClient) GetSkills(ctx context.Context) ([]models.Skill, error) {
	var response []models.Skill
	if err := c.Request(ctx, "GET", config.SKILLS_ENDPOINT, nil, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetPatterns retrieves every forecaster pattern template, bound or not.
func (c *TargControlApiClient) GetPatterns(ctx context.Context) ([]models.PatternTemplate, error) {
	var response []models.PatternTemplate
	if err := c.Request(ctx, "GET", config.PATTERNS_ENDPOINT, nil, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetMetrics retrieves the forecaster metrics.
func (c *TargControlApiClient) GetMetrics(ctx context.Context) ([]models.Metric, error) {
	var response []models.Metric
	if err := c.Request(ctx, "GET", config.METRICS_ENDPOINT, nil, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// SaveDataset submits one dataset and returns the raw confirmation body.
func (c *TargControlApiClient) SaveDataset(ctx context.Context, dataset *models.Dataset) (json.RawMessage, error) {
	var response json.RawMessage
	if err := c.Request(ctx, "POST", config.DATASET_SAVE_ENDPOINT, nil, c.headers(), dataset, &response); err != nil {
		return nil, err
	}
	return response, nil
}
