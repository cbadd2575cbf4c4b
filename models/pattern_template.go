package models

// PatternTemplate is a pattern as listed by GET /external/api/forecaster/pattern.
type PatternTemplate struct {
	ID        string  `json:"id"`
	DatasetID *string `json:"datasetId"`
}

// IsAvailable reports whether the template is not bound to a dataset yet.
func (p PatternTemplate) IsAvailable() bool {
	return p.DatasetID == nil || *p.DatasetID == ""
}
