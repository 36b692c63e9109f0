package repository

import "clinicmap/internal/domain/entity"

// FacilityRepository is a read-only view over the loaded facility table.
type FacilityRepository interface {
	// Query returns facilities whose specialty contains term, case-insensitively,
	// in dataset order. An empty term matches nothing.
	Query(term string) []entity.Facility

	// Len returns the number of usable facilities.
	Len() int
}
