// Package mapbox implements the route provider on top of the Mapbox Directions API.
package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clinicmap/config"
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/domain/service"
	"clinicmap/internal/errors"

	"go.uber.org/fx"
)

const (
	codeOK      = "Ok"
	codeUnknown = "Unknown API Error"

	// maxErrorBody caps how much of a failed response is read for its error code
	maxErrorBody = 64 << 10
)

// directionsResponse is the subset of the Directions v5 payload the app needs.
// Numeric fields are pointers so that absent values stay distinguishable from zero.
type directionsResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []route `json:"routes"`
}

type route struct {
	Duration *float64 `json:"duration"`
	Distance *float64 `json:"distance"`
	Geometry *string  `json:"geometry"`
}

// directionsClient implements service.RouteProvider
type directionsClient struct {
	baseURL    string
	profile    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Options configures a directions client
type Options struct {
	BaseURL    string
	Profile    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a Directions API client
func NewClient(opts Options, logger *slog.Logger) (service.RouteProvider, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" || token == config.PlaceholderMapboxToken {
		return nil, errors.New("mapbox access token is missing or a placeholder")
	}

	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid mapbox base url %q", opts.BaseURL)
	}

	if opts.Profile == "" {
		return nil, errors.New("mapbox routing profile is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
		}
	}

	return &directionsClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		profile:    strings.Trim(opts.Profile, "/"),
		token:      token,
		timeout:    opts.Timeout,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// ClientParams holds dependencies for the directions client, injected by Fx
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewRouteProvider builds the Mapbox route provider from configuration.
// A missing or placeholder token fails application start.
func NewRouteProvider(params ClientParams) (service.RouteProvider, error) {
	if err := params.Config.ValidateMapboxToken(); err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := params.Config.Mapbox
	provider, err := NewClient(Options{
		BaseURL: cfg.BaseURL,
		Profile: cfg.Profile,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
	}, params.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Mapbox directions client")
	}

	params.Logger.Info("Mapbox directions client initialized",
		slog.String("profile", cfg.Profile),
		slog.Duration("timeout", cfg.Timeout),
	)

	return provider, nil
}

// Route requests one driving route with a simplified, polyline-encoded overview geometry.
// Every failure is folded into the returned outcome.
func (c *directionsClient) Route(ctx context.Context, origin, destination entity.Coordinate) entity.RouteOutcome {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.directionsURL(origin, destination), nil)
	if err != nil {
		return entity.NewRouteTransportError(err.Error())
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.IsTimeout(err) {
			return entity.NewRouteTransportError("directions request timed out after " + c.timeout.String())
		}

		return entity.NewRouteTransportError(redactToken(err.Error(), c.token))
	}
	defer resp.Body.Close()

	c.logger.Debug("Mapbox directions response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.NewRouteTransportError(redactToken(err.Error(), c.token))
	}

	// An empty object or null carries nothing to report
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return entity.NewRouteTransportError("decode directions response: " + err.Error())
	}
	if len(fields) == 0 {
		return entity.NewNoRoute()
	}

	var payload directionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return entity.NewRouteTransportError("decode directions response: " + err.Error())
	}

	return outcomeFromResponse(&payload)
}

func (c *directionsClient) directionsURL(origin, destination entity.Coordinate) string {
	query := url.Values{}
	query.Set("access_token", c.token)
	query.Set("geometries", "polyline")
	query.Set("overview", "simplified")

	return c.baseURL + "/directions/v5/" + c.profile + "/" +
		formatLonLat(origin) + ";" + formatLonLat(destination) + "?" + query.Encode()
}

// statusError maps a non-2xx answer to an API error, preferring the code Mapbox puts in the body
func (c *directionsClient) statusError(resp *http.Response) entity.RouteOutcome {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload directionsResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Code != "" {
		return entity.NewRouteAPIError(payload.Code, payload.Message)
	}

	message := payload.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return entity.NewRouteAPIError(strconv.Itoa(resp.StatusCode), message)
}

// outcomeFromResponse maps a non-empty 2xx payload. Only "Ok" without routes means no route;
// any other code, NoRoute included, is reported as an API error.
func outcomeFromResponse(payload *directionsResponse) entity.RouteOutcome {
	if len(payload.Routes) > 0 {
		first := payload.Routes[0]

		return entity.NewRouteFound(first.Duration, first.Distance, first.Geometry)
	}

	switch payload.Code {
	case codeOK:
		return entity.NewNoRoute()
	case "":
		return entity.NewRouteAPIError(codeUnknown, payload.Message)
	default:
		return entity.NewRouteAPIError(payload.Code, payload.Message)
	}
}

// formatLonLat renders "lon,lat", the order the Directions API expects
func formatLonLat(c entity.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

// redactToken keeps the access token out of error text shown to users and logs
func redactToken(message, token string) string {
	if token == "" {
		return message
	}

	return strings.ReplaceAll(message, token, "REDACTED")
}
