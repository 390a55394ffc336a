package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/foliolab/folio/internal/service"
)

// Every response is a JSON envelope: isSuccess, a human-readable message,
// and optionally the payload under its own key. The HTTP status carries
// the error class alongside.
func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, message string, payload map[string]any) {
	body := map[string]any{
		"isSuccess": true,
		"message":   message,
	}
	for key, value := range payload {
		body[key] = value
	}
	writeJSON(w, http.StatusOK, body)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = clientMessage(err, service.ErrValidation)
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = clientMessage(err, service.ErrUnauthorized)
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = clientMessage(err, service.ErrNotFound)
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		message = clientMessage(err, service.ErrConflict)
	default:
		slog.Error("request failed", "error", err)
	}

	writeJSON(w, status, map[string]any{
		"isSuccess": false,
		"message":   message,
	})
}

// clientMessage strips the sentinel suffix the services append for
// classification; the prefix is the part written for humans.
func clientMessage(err error, sentinel error) string {
	message := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if message == "" {
		return sentinel.Error()
	}
	return message
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("invalid request body: %w", service.ErrValidation)
	}
	return nil
}

const maxUploadMemory = 16 << 20

// formFile pulls the uploaded file out of a multipart request.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid multipart request: %w", service.ErrValidation)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("file field %q is required: %w", field, service.ErrValidation)
	}

	return file, header, nil
}
