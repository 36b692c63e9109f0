package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"clinicmap/config"
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultColumns() ColumnMapping {
	return ColumnMapping{
		Latitude:  "LAT",
		Longitude: "LON",
		Specialty: "Disease",
		Name:      "NAME",
		Details:   "Specialist",
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_CleansRows(t *testing.T) {
	csvData := `NAME,LAT,LON,Disease,Specialist
Heart Care,11.0,77.0,Cardiology,Dr. A
Brain Clinic,12.0,78.0,Neurology,
Broken Lat,abc,78.0,Cardiology,Dr. B
Missing Lon,12.5,,Cardiology,Dr. C
,13.0,79.0,,Dr. D
Infinite,inf,79.0,Cardiology,Dr. E
`
	store, err := Load(writeCSV(t, csvData), defaultColumns())
	require.NoError(t, err)

	// 6 raw rows, 3 with invalid coordinates
	assert.Equal(t, 6, store.RawRows())
	assert.Equal(t, 3, store.Dropped())
	assert.Equal(t, 3, store.Len())
	assert.False(t, store.Empty())
	assert.NotEmpty(t, store.Checksum())
	assert.Equal(t, int64(len(csvData)), store.Source().Size)

	first := store.facilities[0]
	assert.InDelta(t, 11.0, first.Latitude, 1e-9)
	assert.InDelta(t, 77.0, first.Longitude, 1e-9)
	assert.Equal(t, "Cardiology", first.Specialty)
	require.NotNil(t, first.Name)
	assert.Equal(t, "Heart Care", *first.Name)
	require.NotNil(t, first.Details)
	assert.Equal(t, "Dr. A", *first.Details)

	second := store.facilities[1]
	assert.Nil(t, second.Details)

	third := store.facilities[2]
	assert.Equal(t, "", third.Specialty)
	assert.Nil(t, third.Name)
}

func TestLoad_OutOfRangeCoordinatesAreKept(t *testing.T) {
	csvData := `LAT,LON,Disease
95.0,200.0,Cardiology
`
	store, err := Load(writeCSV(t, csvData), defaultColumns())
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
}

func TestLoad_OptionalColumnsAbsent(t *testing.T) {
	csvData := `LAT,LON,Disease
11.0,77.0,Cardiology
`
	store, err := Load(writeCSV(t, csvData), defaultColumns())
	require.NoError(t, err)

	require.Equal(t, 1, store.Len())
	assert.Nil(t, store.facilities[0].Name)
	assert.Nil(t, store.facilities[0].Details)
}

func TestLoad_ByteOrderMarkAndRaggedRows(t *testing.T) {
	csvData := "\ufeffLAT,LON,Disease,NAME\n11.0,77.0,Cardiology\n12.0,78.0\n"
	store, err := Load(writeCSV(t, csvData), defaultColumns())
	require.NoError(t, err)

	require.Equal(t, 2, store.Len())
	assert.Equal(t, "Cardiology", store.facilities[0].Specialty)
	assert.Nil(t, store.facilities[0].Name)
	assert.Equal(t, "", store.facilities[1].Specialty)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), defaultColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetNotFound))
}

func TestLoad_MissingColumns(t *testing.T) {
	csvData := `LAT,Disease,NAME
11.0,Cardiology,Heart Care
`
	_, err := Load(writeCSV(t, csvData), defaultColumns())
	require.Error(t, err)

	var missingErr *MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"LON"}, missingErr.Missing)
	assert.Equal(t, []string{"LAT", "Disease", "NAME"}, missingErr.Available)
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(writeCSV(t, ""), defaultColumns())
	require.Error(t, err)

	var missingErr *MissingColumnsError
	assert.True(t, errors.As(err, &missingErr))
}

func TestLoad_NoUsableRows(t *testing.T) {
	csvData := `LAT,LON,Disease
x,y,Cardiology
`
	store, err := Load(writeCSV(t, csvData), defaultColumns())
	require.NoError(t, err)

	assert.True(t, store.Empty())
	assert.Empty(t, store.Query("cardio"))
}

func TestStore_Query(t *testing.T) {
	store := NewStoreFromFacilities([]entity.Facility{
		{Latitude: 11.0, Longitude: 77.0, Specialty: "Cardiology"},
		{Latitude: 12.0, Longitude: 78.0, Specialty: "Neurology"},
		{Latitude: 13.0, Longitude: 79.0, Specialty: "Pediatric CARDIOLOGY"},
		{Latitude: 14.0, Longitude: 80.0, Specialty: "Ortho (knee)"},
	})

	t.Run("case insensitive substring", func(t *testing.T) {
		matches := store.Query("cardio")
		require.Len(t, matches, 2)
		assert.InDelta(t, 11.0, matches[0].Latitude, 1e-9)
		assert.InDelta(t, 13.0, matches[1].Latitude, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, store.Query("dermatology"))
	})

	t.Run("empty term matches nothing", func(t *testing.T) {
		matches := store.Query("")
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("literal, not regex", func(t *testing.T) {
		assert.Len(t, store.Query("(knee)"), 1)
		assert.Empty(t, store.Query("c.rdio"))
	})

	t.Run("fresh slice per call", func(t *testing.T) {
		first := store.Query("neuro")
		first[0].Specialty = "mutated"

		second := store.Query("neuro")
		require.Len(t, second, 1)
		assert.Equal(t, "Neurology", second[0].Specialty)
	})
}

func TestStore_QueryKeepsDuplicates(t *testing.T) {
	row := entity.Facility{Latitude: 11.0, Longitude: 77.0, Specialty: "Cardiology"}
	store := NewStoreFromFacilities([]entity.Facility{row, row})

	assert.Len(t, store.Query("cardiology"), 2)
}

func TestNewFacilityStore(t *testing.T) {
	csvData := `LAT,LON,Disease
11.0,77.0,Cardiology
bad,77.0,Cardiology
`
	cfg := &config.Config{}
	cfg.Dataset = &config.DatasetConfig{
		Path: writeCSV(t, csvData),
		Columns: config.ColumnsConfig{
			Latitude:  "LAT",
			Longitude: "LON",
			Specialty: "Disease",
		},
	}

	store, err := NewFacilityStore(StoreParams{Config: cfg, Logger: slog.Default()})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Dropped())
}

func TestNewFacilityStore_MissingFileFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dataset = &config.DatasetConfig{
		Path:    filepath.Join(t.TempDir(), "missing.csv"),
		Columns: config.ColumnsConfig{Latitude: "LAT", Longitude: "LON", Specialty: "Disease"},
	}

	_, err := NewFacilityStore(StoreParams{Config: cfg, Logger: slog.Default()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetNotFound))
}
