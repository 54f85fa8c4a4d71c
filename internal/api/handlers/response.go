package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Коды ошибок в ответе
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidation      = "validation_error"
	CodePastTime        = "past_time"
	CodeSlotUnavailable = "slot_unavailable"
	CodeNotFound        = "not_found"
	CodeInternal        = "internal_error"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// RespondJSON пишет ответ в JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// RespondValidationError 400 с указанием поля
func RespondValidationError(w http.ResponseWriter, field, message string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation, Field: field})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeSlotUnavailable, message)
}

// RespondInternalError 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// DecodeJSON декодирует тело запроса в v
// Лишние данные после JSON объекта считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if decoder.More() {
		return errors.New("unexpected data after json object")
	}
	return nil
}
