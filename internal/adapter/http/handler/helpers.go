package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status and writes it. Server faults are
// reported without their cause.
func writeDomainError(w http.ResponseWriter, err error) {
	status := mapDomainError(err)

	switch status {
	case http.StatusBadRequest:
		resp := dto.ErrorResponse{Error: "invalid param", Message: err.Error()}
		if ipe, ok := domain.IsInvalidParam(err); ok {
			resp.Param = ipe.Param
			resp.Message = ipe.Reason
		}
		writeJSON(w, status, resp)
	case http.StatusUnauthorized:
		writeError(w, status, "unauthorized", "")
	default:
		writeError(w, status, "internal server error", "")
	}
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized
	}

	if _, ok := domain.IsInvalidParam(err); ok {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// decodeJSON decodes the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	return true
}

// bearerToken returns the token stored by middleware.BearerToken,
// answering 401 when it is absent.
func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return "", false
	}

	return token, true
}
