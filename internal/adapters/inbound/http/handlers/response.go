package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"

	codeNotFound         = "NOT_FOUND"
	codeInvalidID        = "INVALID_ID"
	codeInvalidJSON      = "INVALID_JSON"
	codeValidationFailed = "VALIDATION_FAILED"
	codeInternalError    = "INTERNAL_ERROR"
	codeUnavailable      = "SERVICE_UNAVAILABLE"

	msgDeviceNotFound     = "device not found"
	msgPhotoNotFound      = "photo not found"
	msgInvalidDeviceID    = "invalid device ID"
	msgInvalidRequestBody = "invalid request body"
	msgInternalError      = "internal server error"
	msgStorageUnavailable = "photo storage is unavailable"
)

type (
	ErrorResponse struct {
		Code      string            `json:"code"`
		Message   string            `json:"message"`
		Details   []ValidationIssue `json:"details,omitempty"`
		Timestamp time.Time         `json:"timestamp"`
	}

	ValidationIssue struct {
		Field   string `json:"field"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}

	messageResponse struct {
		Message string `json:"message"`
	}

	uploadResponse struct {
		URL string `json:"url"`
	}
)

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSONResponse(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
