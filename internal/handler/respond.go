package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pizzalab/pizza-service/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service error kinds to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAuthFailed):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}

	writeJSON(w, status, map[string]string{"error": message})
}
