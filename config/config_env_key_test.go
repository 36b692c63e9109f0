package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"mapbox": map[string]any{
			"token":   "",
			"baseUrl": "https://api.mapbox.com",
		},
		"dataset": map[string]any{
			"columns": map[string]any{
				"latitude": "LAT",
			},
		},
		"search": map[string]any{
			"routeWorkers": 1,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "MAPBOX_TOKEN", want: "mapbox.token"},
		{envKey: "MAPBOX_BASEURL", want: "mapbox.baseUrl"},
		{envKey: "DATASET_COLUMNS_LATITUDE", want: "dataset.columns.latitude"},
		{envKey: "SEARCH_ROUTEWORKERS", want: "search.routeWorkers"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_ZeroConfig(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "https://api.mapbox.com", cfg.Mapbox.BaseURL)
	assert.Equal(t, "mapbox/driving", cfg.Mapbox.Profile)
	assert.Equal(t, 10*time.Second, cfg.Mapbox.Timeout)
	assert.Equal(t, "LAT", cfg.Dataset.Columns.Latitude)
	assert.Equal(t, "LON", cfg.Dataset.Columns.Longitude)
	assert.Equal(t, "Disease", cfg.Dataset.Columns.Specialty)
	assert.Equal(t, "Cardiology", cfg.Search.DefaultTerm)
	assert.InDelta(t, 11.0283, cfg.Search.DefaultLatitude, 1e-9)
	assert.InDelta(t, 77.0273, cfg.Search.DefaultLongitude, 1e-9)
	assert.Equal(t, 1, cfg.Search.RouteWorkers)
	assert.Equal(t, 256, cfg.QRCode.Size)
}

func TestValidateMapboxToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "empty", token: "", wantErr: true},
		{name: "whitespace", token: "   ", wantErr: true},
		{name: "placeholder", token: PlaceholderMapboxToken, wantErr: true},
		{name: "real token", token: "pk.test-token", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mapbox: &MapboxConfig{Token: tt.token}}
			err := cfg.ValidateMapboxToken()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
