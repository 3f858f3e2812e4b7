package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gamevault_server/apperrors"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the error taxonomy onto HTTP statuses: conflict
// for duplicate creates, not-found for missing records, bad-request
// for malformed keys, bad-gateway for marketplace outages, and
// service-unavailable for store outages
func respondError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case apperrors.IsMalformedKey(err):
		status = http.StatusBadRequest
	case apperrors.IsMarketplaceUnavailable(err):
		status = http.StatusBadGateway
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}
