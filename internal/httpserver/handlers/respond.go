package handlers

import (
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope statuses. "fail" is for errors the caller can correct,
// "error" for unexpected server side conditions.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// Envelope is the body of every book endpoint response.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func success(w http.ResponseWriter, code int, message string, data interface{}, log logger.Logger) {
	writeJSON(w, code, Envelope{Status: StatusSuccess, Message: message, Data: data}, log)
}

func fail(w http.ResponseWriter, code int, message string, log logger.Logger) {
	writeJSON(w, code, Envelope{Status: StatusFail, Message: message}, log)
}

func serverError(w http.ResponseWriter, message string, log logger.Logger) {
	writeJSON(w, http.StatusInternalServerError, Envelope{Status: StatusError, Message: message}, log)
}

// decodePayload reads a JSON book payload from the request body.
func decodePayload(w http.ResponseWriter, r *http.Request) (domain.Payload, error) {
	var p domain.Payload
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return domain.Payload{}, fmt.Errorf("invalid request payload: %w", err)
	}
	return p, nil
}

// validationMessage phrases a rejected payload for the given action
// ("add", "update").
func validationMessage(action string, err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Sprintf("Failed to %s book. %s", action, err.Error())
	}

	switch ve.Message {
	case domain.MsgNameRequired:
		return fmt.Sprintf("Failed to %s book. Please provide the book name", action)
	case domain.MsgReadPageExceeds:
		return fmt.Sprintf("Failed to %s book. readPage cannot be greater than pageCount", action)
	default:
		return fmt.Sprintf("Failed to %s book. %s", action, ve.Message)
	}
}
