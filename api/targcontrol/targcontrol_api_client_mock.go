package targcontrol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dataset-uploader/models"
	"dataset-uploader/util"
)

// TargControlApiClientMock serves canned reference data and records every
// submitted dataset.
type TargControlApiClientMock struct {
	mu sync.Mutex

	Fixture models.ReferenceFixture

	LocationsErr error
	SkillsErr    error
	PatternsErr  error
	MetricsErr   error
	// SaveErrors fails the submission of the named datasets.
	SaveErrors map[string]error

	Saved     []models.Dataset
	SaveCalls int
}

// NewTargControlApiClientMock creates a mock serving fixture.
func NewTargControlApiClientMock(fixture models.ReferenceFixture) *TargControlApiClientMock {
	return &TargControlApiClientMock{Fixture: fixture, SaveErrors: map[string]error{}}
}

// NewTargControlApiClientMockFromJSON loads the fixture from a JSON file.
func NewTargControlApiClientMockFromJSON(path string) (*TargControlApiClientMock, error) {
	fixture, err := util.ReadReferenceFixtureFromJSON(path)
	if err != nil {
		fmt.Println("Could not read reference fixture from json")
		return nil, err
	}
	return NewTargControlApiClientMock(*fixture), nil
}

func (c *TargControlApiClientMock) GetLocations(ctx context.Context, page, size int) (*models.LocationsPage, error) {
	if c.LocationsErr != nil {
		return nil, c.LocationsErr
	}
	start := page * size
	if start >= len(c.Fixture.Locations) {
		return &models.LocationsPage{Data: []models.Location{}}, nil
	}
	end := start + size
	if end > len(c.Fixture.Locations) {
		end = len(c.Fixture.Locations)
	}
	return &models.LocationsPage{Data: c.Fixture.Locations[start:end]}, nil
}

func (c *TargControlApiClientMock) GetSkills(ctx context.Context) ([]models.Skill, error) {
	if c.SkillsErr != nil {
		return nil, c.SkillsErr
	}
	return c.Fixture.Skills, nil
}

func (c *TargControlApiClientMock) GetPatterns(ctx context.Context) ([]models.PatternTemplate, error) {
	if c.PatternsErr != nil {
		return nil, c.PatternsErr
	}
	return c.Fixture.Patterns, nil
}

func (c *TargControlApiClientMock) GetMetrics(ctx context.Context) ([]models.Metric, error) {
	if c.MetricsErr != nil {
		return nil, c.MetricsErr
	}
	return c.Fixture.Metrics, nil
}

func (c *TargControlApiClientMock) SaveDataset(ctx context.Context, dataset *models.Dataset) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.SaveCalls++
	if dataset == nil {
		return nil, errors.New("nil dataset")
	}
	if err, ok := c.SaveErrors[dataset.Name]; ok {
		return nil, err
	}
	c.Saved = append(c.Saved, *dataset)
	return json.RawMessage(`{"status":"ok"}`), nil
}
