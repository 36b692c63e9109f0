package usecase

import (
	"context"
	"time"

	"clinicmap/internal/domain/entity"
)

// SearchInput is a resolved search: a non-empty term and a valid origin
type SearchInput struct {
	Term   string
	Origin entity.Coordinate
}

// SearchResult holds the enriched matches of one search, in dataset order
type SearchResult struct {
	Term     string                  `json:"term"`
	Origin   entity.Coordinate       `json:"origin"`
	Results  []entity.EnrichedResult `json:"results"`
	Duration time.Duration           `json:"duration"` // Total enrichment time
}

// SearchUsecase defines the match-and-enrich pipeline
type SearchUsecase interface {
	// Search filters facilities by specialty and attaches a route outcome to each match.
	// Route failures are recorded per result; Search itself never fails.
	Search(ctx context.Context, input SearchInput) *SearchResult
}
