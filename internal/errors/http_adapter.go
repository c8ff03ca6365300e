package errors

import (
	"log/slog"
	"net/http"
)

// HTTPAdapter maps classified errors to HTTP responses. Responses are
// plain text: the consumers of this service are AI agents reading
// Markdown, not JSON clients.
type HTTPAdapter struct {
	logger *slog.Logger
}

// NewHTTPAdapter creates an adapter with an optional logger; nil falls
// back to slog.Default.
func NewHTTPAdapter(logger *slog.Logger) *HTTPAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPAdapter{logger: logger}
}

// StatusCodeFor determines the HTTP status for an error based on its
// classification. Unknown errors map to 500.
func (a *HTTPAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetCategory(err) {
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryUpstream:
		return http.StatusBadGateway
	case CategoryConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor picks the body text. Not-found errors surface their own
// message; everything else gets a generic line so upstream details never
// leak to clients.
func messageFor(err error) string {
	switch GetCategory(err) {
	case CategoryNotFound:
		if c, ok := AsClassified(err); ok {
			return c.Message()
		}
		return "not found"
	case CategoryUpstream:
		return "Error fetching data from the store"
	default:
		return "Internal server error"
	}
}

// WriteError logs the error and writes the plain-text response.
func (a *HTTPAdapter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := a.StatusCodeFor(err)
	level := slog.LevelError
	if status == http.StatusNotFound {
		level = slog.LevelInfo
	}
	a.logger.Log(r.Context(), level, "request failed",
		"path", r.URL.Path,
		"status", status,
		"category", string(GetCategory(err)),
		"error", err)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(messageFor(err) + "\n"))
}
