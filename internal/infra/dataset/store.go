package dataset

import (
	"log/slog"
	"strings"

	"clinicmap/config"
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/domain/repository"
	"clinicmap/internal/errors"
	"clinicmap/internal/util"

	"go.uber.org/fx"
)

// Store is the immutable, in-memory facility table.
// It is safe for concurrent readers because nothing writes to it after Load returns.
type Store struct {
	facilities []entity.Facility
	specialty  []string // lower-cased specialty text, parallel to facilities
	rawRows    int
	dropped    int
	source     util.FileFingerprint
}

var _ repository.FacilityRepository = (*Store)(nil)

// Load reads the CSV at path and builds a Store.
// A file that yields zero usable rows is not an error; check Empty on the result.
func Load(path string, columns ColumnMapping) (*Store, error) {
	result, err := NewCSVLoader(path, columns).load()
	if err != nil {
		return nil, err
	}

	source, err := util.Fingerprint(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return newStore(result.facilities, result.rawRows, result.dropped, source), nil
}

// NewStoreFromFacilities builds a Store from already-clean records, mainly for fixtures.
func NewStoreFromFacilities(facilities []entity.Facility) *Store {
	return newStore(append([]entity.Facility(nil), facilities...), len(facilities), 0, util.FileFingerprint{})
}

func newStore(facilities []entity.Facility, rawRows, dropped int, source util.FileFingerprint) *Store {
	specialty := make([]string, len(facilities))
	for i, facility := range facilities {
		specialty[i] = strings.ToLower(facility.Specialty)
	}

	return &Store{
		facilities: facilities,
		specialty:  specialty,
		rawRows:    rawRows,
		dropped:    dropped,
		source:     source,
	}
}

// Query returns facilities whose specialty contains term, ignoring case.
// The match is literal, the result preserves dataset order, and an empty term matches nothing.
func (s *Store) Query(term string) []entity.Facility {
	if term == "" || len(s.facilities) == 0 {
		return []entity.Facility{}
	}

	needle := strings.ToLower(term)
	matches := make([]entity.Facility, 0)
	for i, specialty := range s.specialty {
		if strings.Contains(specialty, needle) {
			matches = append(matches, s.facilities[i])
		}
	}

	return matches
}

// Len returns the number of usable facilities
func (s *Store) Len() int {
	return len(s.facilities)
}

// Empty reports whether no usable rows survived cleaning
func (s *Store) Empty() bool {
	return len(s.facilities) == 0
}

// RawRows returns the number of data rows read before cleaning
func (s *Store) RawRows() int {
	return s.rawRows
}

// Dropped returns the number of rows removed for invalid coordinates
func (s *Store) Dropped() int {
	return s.dropped
}

// Checksum returns the SHA256 of the source file, empty for fixture stores
func (s *Store) Checksum() string {
	return s.source.SHA256
}

// Source returns the fingerprint of the loaded file
func (s *Store) Source() util.FileFingerprint {
	return s.source
}

// StoreParams holds dependencies for the facility store, injected by Fx
type StoreParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewFacilityStore loads the configured dataset once at startup.
// Any load error is fatal to application start.
func NewFacilityStore(params StoreParams) (*Store, error) {
	cfg := params.Config.Dataset
	logger := params.Logger

	logger.Info("Loading facility dataset", slog.String("path", cfg.Path))

	store, err := Load(cfg.Path, ColumnMapping{
		Latitude:  cfg.Columns.Latitude,
		Longitude: cfg.Columns.Longitude,
		Specialty: cfg.Columns.Specialty,
		Name:      cfg.Columns.Name,
		Details:   cfg.Columns.Details,
	})
	if err != nil {
		var missingErr *MissingColumnsError
		if errors.As(err, &missingErr) {
			logger.Error("Dataset is missing required columns",
				slog.Any("missing", missingErr.Missing),
				slog.Any("available", missingErr.Available),
			)
		}

		return nil, errors.Wrapf(err, "load dataset %s", cfg.Path)
	}

	if store.Dropped() > 0 {
		logger.Warn("Removed rows with invalid coordinates",
			slog.Int("dropped", store.Dropped()),
			slog.Int("raw_rows", store.RawRows()),
		)
	}

	if store.Empty() {
		logger.Warn("No valid facilities found in dataset; searches will return no results",
			slog.String("path", cfg.Path),
		)
	} else {
		logger.Info("Facility dataset loaded",
			slog.Int("usable_rows", store.Len()),
			slog.String("source", store.Source().String()),
			slog.Time("modified", store.Source().ModTime),
		)
	}

	return store, nil
}
