package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardia/guardia/internal/platform/auth"
)

// AuditEntry captures who accessed what patient data, when, from where,
// and the action type.
type AuditEntry struct {
	UserID     string
	UserRoles  []string
	Hospital   string
	Resource   string
	Action     string // read, create, update, delete
	IPAddress  string
	UserAgent  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// AuditRecorder persists audit entries. It decouples the middleware from any
// concrete store so that tests can provide a mock implementation.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns Echo middleware that logs access to patient data under
// /api/v1/*. Every request is also emitted as a structured log entry, so the
// audit trail survives even when no recorder is configured.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !strings.HasPrefix(path, "/api/v1/") {
				return next(c)
			}

			// Execute the handler first so we capture the response status.
			err := next(c)

			ctx := req.Context()
			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
				UserID:     auth.UserIDFromContext(ctx),
				UserRoles:  auth.RolesFromContext(ctx),
				Hospital:   auth.HospitalFromContext(ctx),
				Action:     httpMethodToAction(req.Method),
				Resource:   resourceFromPath(path),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "access_audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("hospital", entry.Hospital).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("patient_data_access")

			return err
		}
	}
}

func httpMethodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// resourceFromPath parses the first path segment under /api/v1/, e.g.
// /api/v1/handovers/123 -> handovers.
func resourceFromPath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}
