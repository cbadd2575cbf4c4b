package models

// Metric is the forecasting KPI a dataset is evaluated against.
type Metric struct {
	ID   string `json:"id"`
	Name Name   `json:"name"`
}
