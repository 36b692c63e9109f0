package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"clinicmap/config"
	deliverycontext "clinicmap/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// AccessLogMiddleware writes one line per request.
// Outside debug mode only failed or slow requests are logged, and health probes are never logged.
type AccessLogMiddleware struct {
	logger        *slog.Logger
	debug         bool
	slowThreshold time.Duration
}

// NewAccessLogMiddleware creates the access log middleware.
// Directions lookups dominate latency, so a request slower than one lookup timeout counts as slow.
func NewAccessLogMiddleware(logger *slog.Logger, cfg *config.Config) *AccessLogMiddleware {
	var slow time.Duration
	if cfg.Mapbox != nil {
		slow = cfg.Mapbox.Timeout
	}

	return &AccessLogMiddleware{
		logger:        logger,
		debug:         cfg.Env.Debug,
		slowThreshold: slow,
	}
}

// Handle logs the request after next returns
func (m *AccessLogMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if c.Path() != "/health" {
			m.logRequest(c, start, err)
		}

		return err
	}
}

func (m *AccessLogMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	latency := time.Since(start)

	status := c.Response().Status
	if err != nil {
		// The error handler has not written the response yet
		status = errorStatus(err)
	}

	slow := m.slowThreshold > 0 && latency >= m.slowThreshold
	if !m.debug && status < http.StatusBadRequest && !slow {
		return
	}

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}
	if req.URL.RawQuery != "" {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if slow {
		fields = append(fields, slog.Bool("slow", true))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest || slow:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(req.Context(), level, "HTTP Request", fields...)
}
