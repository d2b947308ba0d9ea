package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/nhamil/tilewe-go/internal/api/apierr"
	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/web/templates"
)

// writePage renders into a buffer first so a template failure still yields
// a clean 500
func writePage(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// writeError renders the error page with the status the JSON API would use
func writeError(w http.ResponseWriter, err error) {
	status := apierr.Status(err)
	message := "Something went wrong. Please try again later."
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		message = "Game not found"
	case status < http.StatusInternalServerError:
		message = err.Error()
	}
	writePage(w, status, func(buf *bytes.Buffer) error {
		return templates.Error(buf, templates.ErrorData{
			PageData: templates.PageData{Title: http.StatusText(status)},
			Status:   status,
			Message:  message,
		})
	})
}
