package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrHeld reports that another holder owns the lease this tick
var ErrHeld = errors.New("lock: lease held elsewhere")

// Locker hands out short leases that keep a background loop from running on
// two instances at once. TryLock never blocks: ok is false when someone else
// holds the lease. release is safe to call more than once.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// Local is an in-process Locker for single-instance deployments and tests
type Local struct {
	mu   sync.Mutex
	held map[string]time.Time // key -> lease expiry
	now  func() time.Time
}

func NewLocal() *Local {
	return &Local{held: make(map[string]time.Time), now: time.Now}
}

func (l *Local) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return nil, false, nil
	}
	expiry := now.Add(ttl)
	l.held[key] = expiry

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// a lease that expired and was re-acquired belongs to someone else
			if l.held[key].Equal(expiry) {
				delete(l.held, key)
			}
		})
	}
	return release, true, nil
}
