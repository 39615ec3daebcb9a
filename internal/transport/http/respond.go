package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartquiz-service/internal/domain"
)

// envelope mirrors the API's response wrapper: every payload carries a
// success flag, failures carry a message.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// writeServiceError maps a service failure to its HTTP status. Input
// mistakes are 400s, missing or foreign topics are 404s, everything that
// went wrong upstream or in storage is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrInvalidQuestionCount),
		errors.Is(err, domain.ErrAnswersRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTopicNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrGeneratorNotConfigured):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		if ve, ok := domain.IsValidation(err); ok {
			writeError(w, http.StatusInternalServerError, ve.Error())
			return
		}
		var ge *domain.GeneratorError
		if errors.As(err, &ge) {
			writeError(w, http.StatusInternalServerError, "error generating questions, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
