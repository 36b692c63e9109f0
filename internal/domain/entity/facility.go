// Package entity contains the core business objects of the project.
package entity

// Facility is one row of the facility dataset.
// It is built once at startup and never mutated afterwards.
type Facility struct {
	Latitude  float64 `json:"latitude"`          // Finite, but not range-checked; the dataset is trusted as-is.
	Longitude float64 `json:"longitude"`         // Finite, but not range-checked.
	Specialty string  `json:"specialty"`         // Specialty or disease text used for matching; empty when missing in the source.
	Name      *string `json:"name,omitempty"`    // Display name, nil when the source value is missing.
	Details   *string `json:"details,omitempty"` // Extra display text (e.g. the specialist), nil when missing.
}

// Location returns the facility position as a Coordinate.
func (f Facility) Location() Coordinate {
	return Coordinate{Latitude: f.Latitude, Longitude: f.Longitude}
}
