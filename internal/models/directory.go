package models

import "strings"

// DirectoryEntry is one row of the user search table.
type DirectoryEntry struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;index" json:"name"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Section  string `json:"section"`
	Group    string `gorm:"column:group_name" json:"group"`
}

// Matches reports whether the lowercased query is a substring of the name
// or, when allFields is set, of any column.
func (e *DirectoryEntry) Matches(q string, allFields bool) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	if !allFields {
		return false
	}
	for _, v := range []string{e.Company, e.Location, e.Section, e.Group} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
