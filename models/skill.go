package models

// Skill is a labor capability category. Spreadsheet skill columns are named
// after Skill.Name.
type Skill struct {
	ID   string `json:"id"`
	Name Name   `json:"name"`
}
