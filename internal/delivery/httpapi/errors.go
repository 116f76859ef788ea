package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyConcluded), errors.Is(err, domain.ErrNotAssigned):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrWithdrawalNotFound), errors.Is(err, domain.ErrReviewerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPaymentProvider):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
