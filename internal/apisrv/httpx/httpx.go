// Package httpx holds the JSON envelope and request helpers shared by the
// public and admin handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/evasion-voyages/voyages-manager/internal/entity"
	gerr "github.com/evasion-voyages/voyages-manager/internal/errors"
)

// Envelope is the wire format of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func write(w http.ResponseWriter, status int, e Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}

// Data writes a successful envelope with a payload.
func Data(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Message writes a successful envelope carrying only a human message.
func Message(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: true, Message: msg})
}

// Error writes a failed envelope with the given user-facing message.
func Error(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Error: msg})
}

// ServerError logs the underlying error and answers with a generic message
// so internals never leak to the client.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Default().ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)
	Error(w, http.StatusInternalServerError, "Une erreur interne est survenue")
}

// FromError maps domain errors onto the status codes of the error taxonomy.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		Error(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, gerr.ErrNotFound):
		Error(w, http.StatusNotFound, "Ressource introuvable")
	case errors.Is(err, gerr.ErrAlreadyExists):
		Error(w, http.StatusConflict, "Cette ressource existe déjà")
	case errors.Is(err, gerr.ErrAlreadySubscribed):
		Error(w, http.StatusConflict, gerr.ErrAlreadySubscribed.Error())
	case errors.Is(err, gerr.ErrNotSubscribed):
		Error(w, http.StatusNotFound, gerr.ErrNotSubscribed.Error())
	default:
		ServerError(w, r, err)
	}
}

// Decode parses the JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &entity.ValidationError{Message: "Le corps de la requête est invalide"}
	}
	return nil
}

// ParamInt reads a chi URL parameter as a positive integer.
func ParamInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &entity.ValidationError{Message: fmt.Sprintf("Identifiant invalide: %s", raw)}
	}
	return id, nil
}
