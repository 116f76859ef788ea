package usecase

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

func (uc *DefaultWithdrawalUsecase) GetWithdrawalByID(withdrawalID uint64) (*domain.Withdrawal, error) {
	return uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
}

func (uc *DefaultWithdrawalUsecase) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.Withdrawal, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.WithdrawalRepo.GetWithdrawals(filters, page, limit)
}

// History returns the transfer ledger for a withdrawal, oldest record first.
// The redis snapshot is a best-effort accelerator; the durable ledger is
// authoritative and repopulates the cache on every miss.
func (uc *DefaultWithdrawalUsecase) History(ctx context.Context, withdrawalID uint64) ([]*domain.TransferRecord, error) {
	if uc.HistoryCache != nil {
		if records, ok := uc.HistoryCache.Get(ctx, withdrawalID); ok {
			return records, nil
		}
	}

	records, err := uc.TransferRepo.History(withdrawalID)
	if err != nil {
		return nil, err
	}

	if uc.HistoryCache != nil {
		if err := uc.HistoryCache.Set(ctx, withdrawalID, records); err != nil {
			slog.Warn("failed to cache transfer history", "withdrawal_id", withdrawalID, "error", err.Error())
		}
	}
	return records, nil
}

// VerifyLedger replays the transfer ledger against an initially unassigned
// request and compares the result with the persisted assignee. A mismatch
// indicates a concurrency bug between the ledger and the lifecycle writes.
func (uc *DefaultWithdrawalUsecase) VerifyLedger(ctx context.Context, withdrawalID uint64) (bool, error) {
	withdrawal, err := uc.WithdrawalRepo.GetWithdrawalByID(withdrawalID)
	if err != nil {
		return false, err
	}
	records, err := uc.TransferRepo.History(withdrawalID)
	if err != nil {
		return false, err
	}

	replayed := domain.ReplayAssignee(records)
	if replayed == nil && withdrawal.AssigneeID == nil {
		return true, nil
	}
	if replayed != nil && withdrawal.AssigneeID != nil && *replayed == *withdrawal.AssigneeID {
		return true, nil
	}
	return false, nil
}
