package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
	withdrawalusecase "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/withdrawal"
	"github.com/go-chi/chi/v5"
)

type WithdrawalHandler struct {
	withdrawalUsecase withdrawalusecase.WithdrawalUsecase
	statisticsUsecase usecase.StatisticsUsecase
}

func NewWithdrawalHandler(withdrawalUsecase withdrawalusecase.WithdrawalUsecase, statisticsUsecase usecase.StatisticsUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalUsecase: withdrawalUsecase,
		statisticsUsecase: statisticsUsecase,
	}
}

// actorID carries the authenticated reviewer identity set by the upstream
// gateway; token validation itself is not this service's concern.
func actorID(r *http.Request) string {
	return r.Header.Get("X-Reviewer-ID")
}

func withdrawalID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "withdrawalID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad withdrawal id %q", domain.ErrValidation, raw)
	}
	return id, nil
}

type submitRequest struct {
	PlayerID       string    `json:"player_id"`
	ExternalRef    string    `json:"external_ref"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Method         string    `json:"method"`
	Note           string    `json:"note"`
	AdditionalInfo string    `json:"additional_info"`
	RequestedAt    time.Time `json:"requested_at"`
}

type submitResponse struct {
	WithdrawalID uint64  `json:"withdrawal_id"`
	ExternalRef  string  `json:"external_ref"`
	Status       string  `json:"status"`
	AssignedTo   *string `json:"assigned_to"`
}

func (h *WithdrawalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	output, err := h.withdrawalUsecase.Submit(r.Context(), &withdrawaldto.SubmitWithdrawalInput{
		PlayerID:       request.PlayerID,
		ExternalRef:    request.ExternalRef,
		Amount:         request.Amount,
		Currency:       request.Currency,
		Method:         request.Method,
		Note:           request.Note,
		AdditionalInfo: request.AdditionalInfo,
		RequestedAt:    request.RequestedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		WithdrawalID: output.WithdrawalID,
		ExternalRef:  output.ExternalRef,
		Status:       output.Status,
		AssignedTo:   output.AssignedTo,
	})
}

type claimRequest struct {
	TargetID string `json:"target_id"`
}

func (h *WithdrawalHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request claimRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
			return
		}
	}

	if err := h.withdrawalUsecase.Claim(r.Context(), id, actorID(r), request.TargetID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferRequest struct {
	TargetID string `json:"target_id"`
	Unassign bool   `json:"unassign"`
}

func (h *WithdrawalHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request transferRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	if request.Unassign {
		err = h.withdrawalUsecase.Unassign(r.Context(), id, actorID(r))
	} else {
		err = h.withdrawalUsecase.Transfer(r.Context(), id, actorID(r), request.TargetID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type concludeRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
	Manual   bool   `json:"manual"`
}

func (h *WithdrawalHandler) Conclude(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request concludeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	err = h.withdrawalUsecase.Conclude(r.Context(), id, actorID(r), &withdrawaldto.ConcludeWithdrawalInput{
		Decision: request.Decision,
		Reason:   request.Reason,
		Manual:   request.Manual,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type annotateRequest struct {
	Text string `json:"text"`
}

func (h *WithdrawalHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var request annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	if err := h.withdrawalUsecase.Annotate(r.Context(), id, actorID(r), request.Text); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type withdrawalResponse struct {
	WithdrawalID   uint64     `json:"withdrawal_id"`
	PlayerID       string     `json:"player_id"`
	ExternalRef    string     `json:"external_ref"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	Method         string     `json:"method"`
	Note           string     `json:"note"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	AssigneeID     *string    `json:"assignee_id"`
	Status         string     `json:"status"`
	RejectReason   *string    `json:"reject_reason,omitempty"`
	RequestedAt    time.Time  `json:"requested_at"`
	ConcludedAt    *time.Time `json:"concluded_at,omitempty"`
}

func toWithdrawalResponse(withdrawal *domain.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		WithdrawalID:   withdrawal.ID,
		PlayerID:       withdrawal.PlayerID,
		ExternalRef:    withdrawal.ExternalRef,
		Amount:         withdrawal.Amount,
		Currency:       withdrawal.Currency,
		Method:         withdrawal.Method,
		Note:           withdrawal.ComposedNote(),
		AdditionalInfo: withdrawal.AdditionalInfo,
		AssigneeID:     withdrawal.AssigneeID,
		Status:         string(withdrawal.Status),
		RejectReason:   withdrawal.RejectReason,
		RequestedAt:    withdrawal.RequestedAt,
		ConcludedAt:    withdrawal.ConcludedAt,
	}
}

func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	withdrawal, err := h.withdrawalUsecase.GetWithdrawalByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWithdrawalResponse(withdrawal))
}

func (h *WithdrawalHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := domain.WithdrawalFilters{
		AssigneeID: query.Get("assignee_id"),
		PlayerID:   query.Get("player_id"),
	}
	if status := query.Get("status"); status != "" {
		filters.Statuses = []domain.WithdrawalStatus{domain.WithdrawalStatus(status)}
	}

	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

	withdrawals, total, err := h.withdrawalUsecase.GetWithdrawals(filters, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]withdrawalResponse, len(withdrawals))
	for i, withdrawal := range withdrawals {
		items[i] = toWithdrawalResponse(withdrawal)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

type transferRecordResponse struct {
	ID            string    `json:"id"`
	WithdrawalID  uint64    `json:"withdrawal_id"`
	TransferredBy *string   `json:"transferred_by"`
	TransferredTo *string   `json:"transferred_to"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *WithdrawalHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.withdrawalUsecase.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]transferRecordResponse, len(records))
	for i, record := range records {
		items[i] = transferRecordResponse{
			ID:            record.ID,
			WithdrawalID:  record.WithdrawalID,
			TransferredBy: record.TransferredBy,
			TransferredTo: record.TransferredTo,
			CreatedAt:     record.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *WithdrawalHandler) GlobalStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.GetGlobalStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *WithdrawalHandler) ReviewerStatistics(w http.ResponseWriter, r *http.Request) {
	reviewerID := chi.URLParam(r, "reviewerID")
	stats, err := h.statisticsUsecase.GetReviewerStatistics(r.Context(), reviewerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
