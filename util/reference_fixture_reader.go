package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dataset-uploader/models"
)

// ReadReferenceFixtureFromJSON loads canned reference data from JSON on disk.
func ReadReferenceFixtureFromJSON(filePath string) (*models.ReferenceFixture, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var fixture models.ReferenceFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ReferenceFixture: %w", err)
	}
	return &fixture, nil
}

// PrintCatalogListing prints the fetched reference data for the operator.
func PrintCatalogListing(listing *models.CatalogListing) {
	names := func(n int, at func(int) string) string {
		out := make([]string, n)
		for i := range out {
			out[i] = at(i)
		}
		return strings.Join(out, ", ")
	}
	fmt.Printf("Locations (%d): %s\n", len(listing.Locations),
		names(len(listing.Locations), func(i int) string { return string(listing.Locations[i].Name) }))
	fmt.Printf("Skills (%d): %s\n", len(listing.Skills),
		names(len(listing.Skills), func(i int) string { return string(listing.Skills[i].Name) }))
	fmt.Printf("Metrics (%d): %s\n", len(listing.Metrics),
		names(len(listing.Metrics), func(i int) string { return string(listing.Metrics[i].Name) }))
	fmt.Printf("Available patterns (%d): %s\n", len(listing.AvailablePatterns), strings.Join(listing.AvailablePatterns, ", "))
	for _, w := range listing.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

// PrintBatchReportPartially prints the tally and the rows that need attention.
func PrintBatchReportPartially(report *models.BatchReport) {
	fmt.Printf("Rows: %d, dispatched: %d\n", report.Total, report.Dispatched)
	fmt.Printf("Succeeded: %d, Failed: %d, Skipped: %d\n", report.Succeeded, report.Failed, report.Skipped)
	for _, w := range report.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	for _, o := range report.Outcomes {
		if o.State == models.StateSuccess {
			continue
		}
		fmt.Printf("Row %d [%s]: %s\n", o.Row, o.State, o.Message)
	}
}
