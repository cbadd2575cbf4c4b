package models

// Location is a site the dataset applies to.
type Location struct {
	ID   string `json:"id"`
	Name Name   `json:"name"`
}

// LocationsPage is one page of GET /external/api/locations.
type LocationsPage struct {
	Data []Location `json:"data"`
}
