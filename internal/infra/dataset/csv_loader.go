// Package dataset loads the facility table from CSV and serves read-only queries over it.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"clinicmap/internal/domain/entity"
	"clinicmap/internal/errors"
)

// ErrDatasetNotFound is returned when the CSV source does not exist.
var ErrDatasetNotFound = errors.New("dataset file not found")

// MissingColumnsError is returned when required header columns are absent.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns " + strings.Join(e.Missing, ", ") +
		" (available: " + strings.Join(e.Available, ", ") + ")"
}

// ColumnMapping names the CSV columns. Latitude, Longitude and Specialty are required;
// Name and Details are optional and ignored when empty or absent from the header.
type ColumnMapping struct {
	Latitude  string
	Longitude string
	Specialty string
	Name      string
	Details   string
}

// naValues are the cell values treated as missing, matching the usual dataframe defaults.
//
//nolint:gochecknoglobals
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// CSVLoader handles loading of the facility table from a CSV file
type CSVLoader struct {
	path    string
	columns ColumnMapping
}

// NewCSVLoader creates a new CSV loader for the given file and column names
func NewCSVLoader(path string, columns ColumnMapping) *CSVLoader {
	return &CSVLoader{path: path, columns: columns}
}

// loadResult is what a single pass over the file produces
type loadResult struct {
	facilities []entity.Facility
	rawRows    int
	dropped    int
}

// columnIndex holds header positions; -1 marks an absent optional column
type columnIndex struct {
	latitude  int
	longitude int
	specialty int
	name      int
	details   int
}

// load reads and cleans every row.
// Rows whose latitude or longitude is missing or not a finite number are dropped.
func (l *CSVLoader) load() (*loadResult, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrDatasetNotFound, "open %s", l.path)
		}

		return nil, errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{
			Missing: l.requiredColumns(),
		}
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index, err := l.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &loadResult{}
	lineNum := 1 // header

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		lineNum++
		if readErr != nil {
			return nil, errors.Wrapf(readErr, "read %s at line %d", l.path, lineNum)
		}
		result.rawRows++

		facility, ok := parseFacility(record, index)
		if !ok {
			result.dropped++

			continue
		}

		result.facilities = append(result.facilities, facility)
	}

	return result, nil
}

func (l *CSVLoader) requiredColumns() []string {
	return []string{l.columns.Latitude, l.columns.Longitude, l.columns.Specialty}
}

func (l *CSVLoader) resolveColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := positions[name]; !exists {
			positions[name] = i
		}
	}

	var missing []string
	for _, name := range l.requiredColumns() {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, &MissingColumnsError{
			Missing:   missing,
			Available: append([]string(nil), header...),
		}
	}

	optional := func(name string) int {
		if name == "" {
			return -1
		}
		if pos, ok := positions[name]; ok {
			return pos
		}

		return -1
	}

	return columnIndex{
		latitude:  positions[l.columns.Latitude],
		longitude: positions[l.columns.Longitude],
		specialty: positions[l.columns.Specialty],
		name:      optional(l.columns.Name),
		details:   optional(l.columns.Details),
	}, nil
}

func parseFacility(record []string, index columnIndex) (entity.Facility, bool) {
	lat, ok := parseCoordinate(cell(record, index.latitude))
	if !ok {
		return entity.Facility{}, false
	}

	lng, ok := parseCoordinate(cell(record, index.longitude))
	if !ok {
		return entity.Facility{}, false
	}

	specialty := cell(record, index.specialty)
	if isMissing(specialty) {
		specialty = ""
	}

	return entity.Facility{
		Latitude:  lat,
		Longitude: lng,
		Specialty: specialty,
		Name:      optionalCell(record, index.name),
		Details:   optionalCell(record, index.details),
	}, true
}

// parseCoordinate accepts any finite number; range is deliberately not checked for dataset rows
func parseCoordinate(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if isMissing(raw) {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

func cell(record []string, pos int) string {
	if pos < 0 || pos >= len(record) {
		return ""
	}

	return record[pos]
}

func optionalCell(record []string, pos int) *string {
	value := cell(record, pos)
	if pos < 0 || isMissing(value) {
		return nil
	}

	return &value
}

func isMissing(value string) bool {
	_, ok := naValues[strings.TrimSpace(value)]

	return ok
}
