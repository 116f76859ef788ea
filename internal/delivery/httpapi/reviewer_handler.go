package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
	reviewerdto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/reviewer"
	"github.com/go-chi/chi/v5"
)

type ReviewerHandler struct {
	reviewerUsecase usecase.ReviewerUsecase
}

func NewReviewerHandler(reviewerUsecase usecase.ReviewerUsecase) *ReviewerHandler {
	return &ReviewerHandler{reviewerUsecase: reviewerUsecase}
}

type createReviewerRequest struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

type reviewerResponse struct {
	ID           string `json:"id"`
	Login        string `json:"login"`
	Role         string `json:"role"`
	Availability string `json:"availability"`
}

func toReviewerResponse(reviewer *domain.Reviewer) reviewerResponse {
	return reviewerResponse{
		ID:           reviewer.ID,
		Login:        reviewer.Login,
		Role:         string(reviewer.Role),
		Availability: string(reviewer.Availability),
	}
}

func (h *ReviewerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createReviewerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	reviewer, err := h.reviewerUsecase.CreateReviewer(r.Context(), &reviewerdto.CreateReviewerInput{
		Login: request.Login,
		Role:  domain.Role(request.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewerResponse(reviewer))
}

func (h *ReviewerHandler) Get(w http.ResponseWriter, r *http.Request) {
	reviewer, err := h.reviewerUsecase.GetReviewerByID(chi.URLParam(r, "reviewerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewerResponse(reviewer))
}

func (h *ReviewerHandler) List(w http.ResponseWriter, r *http.Request) {
	reviewers, err := h.reviewerUsecase.GetReviewers()
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]reviewerResponse, len(reviewers))
	for i, reviewer := range reviewers {
		items[i] = toReviewerResponse(reviewer)
	}
	writeJSON(w, http.StatusOK, items)
}

type setAvailabilityRequest struct {
	Availability string `json:"availability"`
}

func (h *ReviewerHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var request setAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	err := h.reviewerUsecase.SetAvailability(
		r.Context(),
		actorID(r),
		chi.URLParam(r, "reviewerID"),
		domain.Availability(request.Availability),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.reviewerUsecase.DeleteReviewer(r.Context(), actorID(r), chi.URLParam(r, "reviewerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
