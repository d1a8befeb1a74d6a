package redisx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"auction-engine/utils"
)

// releaseScript deletes the lease only while it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a lock.Locker backed by a Redis SET NX PX lease
type Lock struct {
	rdb redis.Cmdable
}

func NewLock(rdb redis.Cmdable) *Lock {
	return &Lock{rdb: rdb}
}

func (l *Lock) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	redisKey := LeaseKey(key)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.rdb, []string{redisKey}, token).Err(); err != nil {
				utils.Warn("failed to release lease", map[string]any{"key": key, "error": err.Error()})
			}
		})
	}
	return release, true, nil
}
