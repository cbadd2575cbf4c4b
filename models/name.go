package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Name is a catalog entry name. The remote service occasionally returns
// numeric names (e.g. a location called 1), which are kept in their JSON
// text form so they match the spreadsheet cell "1".
type Name string

func (n *Name) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Name(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("name must be a string or a number, got %s", data)
	}
	*n = Name(num.String())
	return nil
}
