package services

import (
	"fmt"
	"testing"

	"dataset-uploader/api/targcontrol"
	"dataset-uploader/models"

	"github.com/stretchr/testify/require"
)

func runConfig(t *testing.T, patterns int, variant models.SchedulingVariant) *models.RunConfig {
	t.Helper()
	cfg, err := models.NewRunConfig(models.RunConfigInput{
		APIKey:       "token",
		Domain:       "dev",
		PatternCount: patterns,
		StartDay:     "08:00:00",
		EndDay:       "20:00:00",
		StartNight:   "20:00:00",
		EndNight:     "08:00:00",
		Variant:      string(variant),
	})
	require.NoError(t, err)
	return cfg
}

func catalogOf(pairs ...string) models.ReferenceCatalog {
	c := models.NewReferenceCatalog()
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Add(pairs[i], pairs[i+1])
	}
	return c
}

func sheetOf(columns []string, rows ...map[string]string) *models.Sheet {
	s := &models.Sheet{Columns: columns}
	for i, cells := range rows {
		s.Rows = append(s.Rows, models.NewSourceRow(i+2, columns, cells))
	}
	return s
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	}
}

func defaultFixture() models.ReferenceFixture {
	return models.ReferenceFixture{
		Locations: []models.Location{{ID: "loc-1", Name: "Линия 1"}, {ID: "loc-2", Name: "Линия 2"}},
		Skills:    []models.Skill{{ID: "skill-1", Name: "Навык1"}, {ID: "skill-2", Name: "Навык2"}},
		Metrics:   []models.Metric{{ID: "m-1", Name: "Выпуск"}, {ID: "m-2", Name: "Нагрузка"}},
		Patterns: []models.PatternTemplate{
			{ID: "p-bound", DatasetID: strPtr("ds-1")},
			{ID: "p-1"},
			{ID: "p-2"},
		},
	}
}

func strPtr(s string) *string { return &s }

// mockFactory returns a factory serving mock and counting its invocations.
func mockFactory(mock *targcontrol.TargControlApiClientMock, calls *int) targcontrol.Factory {
	return func(domain, apiKey string) targcontrol.TargControlAPI {
		if calls != nil {
			*calls++
		}
		return mock
	}
}
