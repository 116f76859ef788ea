package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rotationQueueKey = "rotation:queue"
	lastAssignedKey  = "rotation:last_assigned"

	lastAssignedTTL = 24 * time.Hour
)

// rotateScript pops the queue head and pushes it to the back in a single
// server-side step, so two concurrent assignment attempts can never both
// receive the same head.
var rotateScript = redis.NewScript(`
local id = redis.call("LPOP", KEYS[1])
if not id then
	return false
end
redis.call("RPUSH", KEYS[1], id)
return id
`)

// pushUniqueScript appends only when the id is not in the list yet, keeping
// the at-most-once invariant of the rotation queue.
var pushUniqueScript = redis.NewScript(`
if redis.call("LPOS", KEYS[1], ARGV[1]) then
	return 0
end
return redis.call("RPUSH", KEYS[1], ARGV[1])
`)

type RedisRotationQueue struct {
	rdb *redis.Client
}

func NewRedisRotationQueue(rdb *redis.Client) *RedisRotationQueue {
	return &RedisRotationQueue{rdb: rdb}
}

func (q *RedisRotationQueue) Push(ctx context.Context, reviewerID string) error {
	return pushUniqueScript.Run(ctx, q.rdb, []string{rotationQueueKey}, reviewerID).Err()
}

func (q *RedisRotationQueue) Remove(ctx context.Context, reviewerID string) error {
	return q.rdb.LRem(ctx, rotationQueueKey, 0, reviewerID).Err()
}

func (q *RedisRotationQueue) Rotate(ctx context.Context) (string, error) {
	reviewerID, err := rotateScript.Run(ctx, q.rdb, []string{rotationQueueKey}).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return reviewerID, nil
}

func (q *RedisRotationQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, rotationQueueKey).Result()
}

func (q *RedisRotationQueue) Snapshot(ctx context.Context) ([]string, error) {
	return q.rdb.LRange(ctx, rotationQueueKey, 0, -1).Result()
}

func (q *RedisRotationQueue) MarkLastAssigned(ctx context.Context, reviewerID string) error {
	return q.rdb.Set(ctx, lastAssignedKey, reviewerID, lastAssignedTTL).Err()
}
