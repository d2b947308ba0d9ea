package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nhamil/tilewe-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPlayerCount = "INVALID_PLAYER_COUNT"
	CodeInvalidMove        = "INVALID_MOVE"
	CodeInvalidSeat        = "INVALID_SEAT"
	CodeUnknownStrategy    = "UNKNOWN_STRATEGY"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeIllegalMove        = "ILLEGAL_MOVE"
	CodeGameFinished       = "GAME_FINISHED"
	CodeNothingToUndo      = "NOTHING_TO_UNDO"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Messages for client errors
// carry the wrapped detail, e.g. the offending notation.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerCount, err.Error()}}
	case errors.Is(err, model.ErrInvalidMove), errors.Is(err, model.ErrInvalidTile):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMove, err.Error()}}
	case errors.Is(err, model.ErrInvalidSeat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSeat, err.Error()}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, err.Error()}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusConflict, APIError{CodeIllegalMove, err.Error()}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrNothingToUndo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToUndo, "No moves to undo"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
