package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_UnmarshalJSON(t *testing.T) {
	var locations []Location
	err := json.Unmarshal([]byte(`[
		{"id": "a", "name": "Линия 1"},
		{"id": "b", "name": 1},
		{"id": "c", "name": 2.5},
		{"id": "d", "name": null}
	]`), &locations)

	require.NoError(t, err)
	assert.Equal(t, Name("Линия 1"), locations[0].Name)
	assert.Equal(t, Name("1"), locations[1].Name)
	assert.Equal(t, Name("2.5"), locations[2].Name)
	assert.Equal(t, Name(""), locations[3].Name)
}

func TestName_UnmarshalJSONRejectsObjects(t *testing.T) {
	var l Location
	err := json.Unmarshal([]byte(`{"id": "a", "name": {"ru": "x"}}`), &l)
	assert.Error(t, err)
}
