package middleware

import (
	"log/slog"
	"net/http"

	"github.com/nhamil/tilewe-go/internal/api/apierr"
	"github.com/nhamil/tilewe-go/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become a JSON INTERNAL_ERROR response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// Logging logs every API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
