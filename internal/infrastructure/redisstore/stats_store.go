package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	globalStatsKey   = "stats:global"
	rejectReasonsKey = "stats:reject_reasons"

	fieldApprovedCount       = "approved_total"
	fieldRejectedCount       = "rejected_total"
	fieldManualApprovedCount = "manual_approved_total"
	fieldManualRejectedCount = "manual_rejected_total"
	fieldApproveAvgMinutes   = "approve_avg_minutes"
	fieldRejectAvgMinutes    = "reject_avg_minutes"
	fieldPaidAmountTotal     = "paid_amount_total"
)

// concludeScript bumps the pooled outcome counter, optionally the manual
// counter, and folds the new duration into the running average — all in one
// server-side step. ARGV: count field, manual field or "", avg field, sample.
var concludeScript = redis.NewScript(`
local count = redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
if ARGV[2] ~= "" then
	redis.call("HINCRBY", KEYS[1], ARGV[2], 1)
end
local avg = tonumber(redis.call("HGET", KEYS[1], ARGV[3]) or "0")
local sample = tonumber(ARGV[4])
local newavg = ((avg * (count - 1)) + sample) / count
redis.call("HSET", KEYS[1], ARGV[3], newavg)
return count
`)

type RedisStatsStore struct {
	rdb *redis.Client
}

func NewRedisStatsStore(rdb *redis.Client) *RedisStatsStore {
	return &RedisStatsStore{rdb: rdb}
}

func reviewerStatsKey(reviewerID string) string {
	return fmt.Sprintf("stats:reviewer:%s", reviewerID)
}

func (s *RedisStatsStore) RecordConclusion(
	ctx context.Context,
	reviewerID string,
	outcome domain.ConclusionOutcome,
	manual bool,
	durationMinutes float64,
) error {
	countField := fieldApprovedCount
	avgField := fieldApproveAvgMinutes
	manualField := ""
	if outcome == domain.OutcomeRejected {
		countField = fieldRejectedCount
		avgField = fieldRejectAvgMinutes
		if manual {
			manualField = fieldManualRejectedCount
		}
	} else if manual {
		manualField = fieldManualApprovedCount
	}

	sample := strconv.FormatFloat(durationMinutes, 'f', -1, 64)
	for _, key := range []string{reviewerStatsKey(reviewerID), globalStatsKey} {
		if err := concludeScript.Run(ctx, s.rdb, []string{key}, countField, manualField, avgField, sample).Err(); err != nil {
			return fmt.Errorf("failed to record conclusion in %s: %w", key, err)
		}
	}
	return nil
}

func (s *RedisStatsStore) IncrRejectReason(ctx context.Context, reason string) error {
	return s.rdb.HIncrBy(ctx, rejectReasonsKey, reason, 1).Err()
}

func (s *RedisStatsStore) AddPaidAmount(ctx context.Context, amount float64) error {
	return s.rdb.HIncrByFloat(ctx, globalStatsKey, fieldPaidAmountTotal, amount).Err()
}

func (s *RedisStatsStore) GetReviewerStatistics(ctx context.Context, reviewerID string) (*domain.ReviewerStatistics, error) {
	fields, err := s.rdb.HGetAll(ctx, reviewerStatsKey(reviewerID)).Result()
	if err != nil {
		return nil, err
	}

	return &domain.ReviewerStatistics{
		ReviewerID:          reviewerID,
		ApprovedCount:       parseInt(fields[fieldApprovedCount]),
		RejectedCount:       parseInt(fields[fieldRejectedCount]),
		ManualApprovedCount: parseInt(fields[fieldManualApprovedCount]),
		ManualRejectedCount: parseInt(fields[fieldManualRejectedCount]),
		ApproveAvgMinutes:   parseFloat(fields[fieldApproveAvgMinutes]),
		RejectAvgMinutes:    parseFloat(fields[fieldRejectAvgMinutes]),
	}, nil
}

func (s *RedisStatsStore) GetGlobalStatistics(ctx context.Context) (*domain.GlobalStatistics, error) {
	fields, err := s.rdb.HGetAll(ctx, globalStatsKey).Result()
	if err != nil {
		return nil, err
	}

	reasonFields, err := s.rdb.HGetAll(ctx, rejectReasonsKey).Result()
	if err != nil {
		return nil, err
	}
	reasons := make(map[string]int64, len(reasonFields))
	for reason, count := range reasonFields {
		reasons[reason] = parseInt(count)
	}

	return &domain.GlobalStatistics{
		ApprovedCount:       parseInt(fields[fieldApprovedCount]),
		RejectedCount:       parseInt(fields[fieldRejectedCount]),
		ManualApprovedCount: parseInt(fields[fieldManualApprovedCount]),
		ManualRejectedCount: parseInt(fields[fieldManualRejectedCount]),
		ApproveAvgMinutes:   parseFloat(fields[fieldApproveAvgMinutes]),
		RejectAvgMinutes:    parseFloat(fields[fieldRejectAvgMinutes]),
		PaidAmountTotal:     parseFloat(fields[fieldPaidAmountTotal]),
		RejectReasons:       reasons,
	}, nil
}

func parseInt(value string) int64 {
	parsed, _ := strconv.ParseInt(value, 10, 64)
	return parsed
}

func parseFloat(value string) float64 {
	parsed, _ := strconv.ParseFloat(value, 64)
	return parsed
}
