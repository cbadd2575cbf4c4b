package models

// PatternDataEntry is one point of a skill's demand curve.
type PatternDataEntry struct {
	ID          string `json:"id"`
	SkillID     string `json:"skillId"`
	Value       int    `json:"value"`
	ShiftsCount int    `json:"shiftsCount"`
}

// DatasetPattern is one time-window template of a dataset.
type DatasetPattern struct {
	ID          string             `json:"id"`
	MetricID    string             `json:"metricId"`
	DatasetID   *string            `json:"datasetId"`
	Name        string             `json:"name"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Description string             `json:"description"`
	SkillIDs    []string           `json:"skillIds"`
	PatternData []PatternDataEntry `json:"patternData"`
	ExternalID  string             `json:"externalId"`
}

// Dataset is the body of POST /external/api/forecaster/dataset/save.
// A Dataset is not modified after it has been built.
type Dataset struct {
	LocationID      string           `json:"locationId"`
	MetricID        string           `json:"metricId"`
	ForecastModelID string           `json:"forecastModelId"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	DatasetPatterns []DatasetPattern `json:"datasetPatterns"`
	Tags            []string         `json:"tags"`
	ExternalID      *string          `json:"externalId"`
}
