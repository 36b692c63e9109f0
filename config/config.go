package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultDotEnvFile         = ".env"

	// PlaceholderMapboxToken is the value shipped in sample env files; it is never a usable token.
	PlaceholderMapboxToken = "YOUR_MAPBOX_ACCESS_TOKEN"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Mapbox configuration for the directions provider and the map widget
	Mapbox *MapboxConfig `json:"mapbox" yaml:"mapbox"`

	// Dataset configuration for the facility CSV
	Dataset *DatasetConfig `json:"dataset" yaml:"dataset"`

	// Search configuration for defaults used by the map page
	Search *SearchConfig `json:"search" yaml:"search"`

	// QRCode configuration for share links
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// MapboxConfig defines the Mapbox Directions API settings
type MapboxConfig struct {
	// Access token, shared by the directions client and the browser map widget
	Token string `json:"token" yaml:"token"`

	// API base URL, overridable for tests and proxies
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Routing profile, e.g. "mapbox/driving"
	Profile string `json:"profile" yaml:"profile"`

	// Timeout for a single directions request
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DatasetConfig defines where the facility table lives and how its columns are named
type DatasetConfig struct {
	Path    string        `json:"path" yaml:"path"`
	Columns ColumnsConfig `json:"columns" yaml:"columns"`
}

// ColumnsConfig names the CSV header columns
type ColumnsConfig struct {
	Latitude  string `json:"latitude" yaml:"latitude"`
	Longitude string `json:"longitude" yaml:"longitude"`
	Specialty string `json:"specialty" yaml:"specialty"`
	Name      string `json:"name" yaml:"name"`
	Details   string `json:"details" yaml:"details"`
}

// SearchConfig defines the fallback search term, origin and map zoom levels
type SearchConfig struct {
	DefaultTerm      string  `json:"defaultTerm" yaml:"defaultTerm"`
	DefaultLatitude  float64 `json:"defaultLatitude" yaml:"defaultLatitude"`
	DefaultLongitude float64 `json:"defaultLongitude" yaml:"defaultLongitude"`
	InitialZoom      float64 `json:"initialZoom" yaml:"initialZoom"`
	SearchZoom       float64 `json:"searchZoom" yaml:"searchZoom"`

	// Number of concurrent directions lookups per search; 1 keeps the sweep sequential
	RouteWorkers int `json:"routeWorkers" yaml:"routeWorkers"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// LoadWithEnv loads .yaml files through koanf.
// An optional .env file next to the working directory is applied before process env vars.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	transform := func(k, v string) (string, any) {
		// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
		// Example: MAPBOX_BASEURL -> mapbox.baseUrl (not mapbox.baseurl)
		return canonicalizeEnvKey(k, existingConfigMap), v
	}

	if _, err := os.Stat(defaultDotEnvFile); err == nil {
		parser := dotenv.ParserEnv("", ".", func(k string) string {
			key, _ := transform(k, "")

			return key
		})
		if err := koanfInstance.Load(file.Provider(defaultDotEnvFile), parser); err != nil {
			return nil, errors.Wrap(err, "load .env file failed")
		}
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{TransformFunc: transform}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills zero values so the rest of the application never sees nil sections
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}

	if c.Mapbox == nil {
		c.Mapbox = &MapboxConfig{}
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.Profile == "" {
		c.Mapbox.Profile = "mapbox/driving"
	}
	if c.Mapbox.Timeout <= 0 {
		c.Mapbox.Timeout = 10 * time.Second
	}

	if c.Dataset == nil {
		c.Dataset = &DatasetConfig{}
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "doc.csv"
	}
	columns := &c.Dataset.Columns
	if columns.Latitude == "" {
		columns.Latitude = "LAT"
	}
	if columns.Longitude == "" {
		columns.Longitude = "LON"
	}
	if columns.Specialty == "" {
		columns.Specialty = "Disease"
	}

	if c.Search == nil {
		c.Search = &SearchConfig{
			DefaultTerm:      "Cardiology",
			DefaultLatitude:  11.0283,
			DefaultLongitude: 77.0273,
		}
	}
	if strings.TrimSpace(c.Search.DefaultTerm) == "" {
		c.Search.DefaultTerm = "Cardiology"
	}
	if c.Search.InitialZoom == 0 {
		c.Search.InitialZoom = 13
	}
	if c.Search.SearchZoom == 0 {
		c.Search.SearchZoom = 14
	}
	if c.Search.RouteWorkers <= 0 {
		c.Search.RouteWorkers = 1
	}

	if c.QRCode == nil {
		c.QRCode = &QRCodeConfig{}
	}
	if c.QRCode.Size <= 0 {
		c.QRCode.Size = 256
	}
	if c.QRCode.ErrorCorrectionLevel == "" {
		c.QRCode.ErrorCorrectionLevel = "M"
	}
}

// ValidateMapboxToken reports whether a usable access token is configured
func (c *Config) ValidateMapboxToken() error {
	if c.Mapbox == nil {
		return errors.New("mapbox configuration is missing")
	}

	token := strings.TrimSpace(c.Mapbox.Token)
	if token == "" || token == PlaceholderMapboxToken {
		return errors.New("MAPBOX_TOKEN not found or is a placeholder; set mapbox.token or the MAPBOX_TOKEN env var")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
