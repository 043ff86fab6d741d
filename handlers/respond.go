package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"timesheet/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are logged server-side and returned as an opaque 500 so
// database details never reach the client.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Message)
		return
	}

	var ste *services.StateTransitionError
	if errors.As(err, &ste) {
		respondJSON(w, http.StatusConflict, map[string]string{
			"error":          ste.Error(),
			"current_status": string(ste.Current),
		})
		return
	}

	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Timesheet not found or you do not have permission to view it")
		return
	}

	log.Printf("internal error: %v", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
