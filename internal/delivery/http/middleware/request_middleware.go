package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pawsync/config"
	deliverycontext "pawsync/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxClientRequestIDLen = 64

// quietPaths are polled by health checks and scrapers and only logged on failure.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// RequestMiddleware tags every request with an ID and a scoped logger and writes the access log.
type RequestMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewRequestMiddleware is the constructor for RequestMiddleware.
func NewRequestMiddleware(logger *slog.Logger, cfg *config.Config) *RequestMiddleware {
	return &RequestMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Tag assigns the request ID and stores a logger carrying it, and the feature addressed,
// on the request context. The ID also ends up on every sync event the request causes.
func (m *RequestMiddleware) Tag(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := clientRequestID(c.Request().Header.Get(deliverycontext.HeaderXRequestID))
		if requestID == "" {
			requestID = newRequestID()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		attrs := []any{slog.String("request_id", requestID)}
		if feature := featureOf(c.Path()); feature != "" {
			attrs = append(attrs, slog.String("feature", feature))
		}

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(attrs...))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Log writes one access log line per request. Intents and sync requests are always logged.
// Reads and streams are logged in debug mode, and every request is logged when it fails.
func (m *RequestMiddleware) Log(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Render the error now so the logged status is the one the client sees.
			c.Error(err)
		}

		status := c.Response().Status
		if m.shouldLog(c, status) {
			m.logRequest(c, start, status, err)
		}

		return err
	}
}

func (m *RequestMiddleware) shouldLog(c echo.Context, status int) bool {
	if status >= http.StatusBadRequest {
		return true
	}
	if _, quiet := quietPaths[c.Path()]; quiet {
		return false
	}
	if c.Request().Method == http.MethodGet {
		return m.debug
	}

	return true
}

func (m *RequestMiddleware) logRequest(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
	}
	if localID := c.Param("id"); localID != "" {
		attrs = append(attrs, slog.String("local_id", localID))
	}
	if taskID := c.Response().Header().Get(deliverycontext.HeaderXTaskID); taskID != "" {
		attrs = append(attrs, slog.String("task_id", taskID))
	}
	if m.debug {
		attrs = append(attrs,
			slog.String("remote_ip", c.RealIP()),
			slog.String("user_agent", req.UserAgent()))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	// The scoped logger already carries the request ID, feature and user.
	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
	logger.LogAttrs(context.WithoutCancel(req.Context()), level, "HTTP Request", attrs...)
}

// clientRequestID keeps a caller supplied ID when it is a short printable token.
func clientRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxClientRequestIDLen {
		return ""
	}
	for _, r := range id {
		if r <= ' ' || r > '~' {
			return ""
		}
	}

	return id
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}

	return id.String()
}

// featureOf returns the feature collection a /v1 route addresses, such as "walks".
func featureOf(route string) string {
	rest, ok := strings.CutPrefix(route, "/v1/")
	if !ok {
		return ""
	}
	feature, _, _ := strings.Cut(rest, "/")
	switch feature {
	case "favorites", "ownerships", "walks", "activities":
		return feature
	default:
		return ""
	}
}
