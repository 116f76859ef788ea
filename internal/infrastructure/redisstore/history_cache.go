package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const historyCacheTTL = 30 * time.Second

// HistoryCache keeps a short-lived snapshot of a withdrawal's transfer
// history. Best-effort only: the durable ledger stays authoritative and the
// cache is repopulated on every miss.
type HistoryCache struct {
	rdb *redis.Client
}

func NewHistoryCache(rdb *redis.Client) *HistoryCache {
	return &HistoryCache{rdb: rdb}
}

func historyKey(withdrawalID uint64) string {
	return fmt.Sprintf("transfers:history:%d", withdrawalID)
}

func (c *HistoryCache) Get(ctx context.Context, withdrawalID uint64) ([]*domain.TransferRecord, bool) {
	payload, err := c.rdb.Get(ctx, historyKey(withdrawalID)).Result()
	if err != nil {
		return nil, false
	}

	var records []*domain.TransferRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false
	}
	return records, true
}

func (c *HistoryCache) Set(ctx context.Context, withdrawalID uint64, records []*domain.TransferRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, historyKey(withdrawalID), payload, historyCacheTTL).Err()
}

func (c *HistoryCache) Invalidate(ctx context.Context, withdrawalID uint64) error {
	return c.rdb.Del(ctx, historyKey(withdrawalID)).Err()
}
