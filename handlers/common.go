package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"todo-project/task-manager/errs"
	"todo-project/task-manager/logging"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps the error taxonomy onto status codes. Anything outside
// the taxonomy is a storage failure: it is logged in full and surfaced as a
// bare 500 so no internal detail leaks to the client.
func respondError(w http.ResponseWriter, err error) {
	var (
		validation *errs.ValidationError
		invalidID  *errs.InvalidIDError
		duplicate  *errs.DuplicateNameError
		emptyUpd   *errs.EmptyUpdateError
		notFound   *errs.NotFoundError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &invalidID),
		errors.As(err, &duplicate), errors.As(err, &emptyUpd):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	default:
		logging.Logger.Errorf("Event ID: STORAGE_ERROR, Description: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
