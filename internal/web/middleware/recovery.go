package middleware

import (
	"log/slog"
	"net/http"

	"github.com/nhamil/tilewe-go/internal/middleware"
	"github.com/nhamil/tilewe-go/internal/web/templates"
)

// Recovery creates panic recovery middleware for the web interface.
// Panics render the HTML error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = templates.Error(w, templates.ErrorData{
		PageData: templates.PageData{Title: "Error"},
		Status:   http.StatusInternalServerError,
		Message:  "Something went wrong. Please try again later.",
	})
}
