package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the single staleness threshold for every platform. The source
// system used inconsistent per-integration values (1h/2h/6h); one canonical
// threshold replaces them.
const DefaultTTL = 2 * time.Hour

// refreshTimeout bounds a background or blocking refresh.
const refreshTimeout = 30 * time.Second

// RefreshFunc fetches a fresh payload for a key.
type RefreshFunc func(ctx context.Context) ([]byte, error)

// Policy implements stale-while-revalidate over a Store:
//
//   - fresh entry: returned as-is;
//   - stale entry: returned immediately while a background refresh runs,
//     refresh failures are logged and never surfaced;
//   - no entry: the call blocks until a fresh fetch completes.
//
// Concurrent refreshes for the same (user, platform) key collapse into one
// flight, so overlapping revalidations cannot race on the upsert.
type Policy struct {
	Store  Store
	TTL    time.Duration
	Logger *log.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	group singleflight.Group
}

func NewPolicy(store Store, ttl time.Duration, logger *log.Logger) *Policy {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Policy{Store: store, TTL: ttl, Logger: logger, Now: time.Now}
}

// Get returns the cached payload for the key, applying the freshness policy.
// The second return value reports whether the payload is stale.
func (p *Policy) Get(ctx context.Context, userID uint, platform string, refresh RefreshFunc) ([]byte, bool, error) {
	entry, err := p.Store.Get(userID, platform)
	if err == nil {
		if p.Now().Sub(entry.LastUpdated) < p.TTL {
			return entry.Payload, false, nil
		}
		// Serve stale, revalidate in the background. A failed refresh keeps
		// the stale payload as the displayed source of truth.
		go func() {
			if _, err := p.refresh(userID, platform, refresh); err != nil {
				p.Logger.Printf("background refresh failed for %s/%d: %v", platform, userID, err)
			}
		}()
		return entry.Payload, true, nil
	}
	if err != ErrMiss {
		return nil, false, err
	}

	payload, err := p.refresh(userID, platform, refresh)
	if err != nil {
		return nil, false, err
	}
	return payload, false, nil
}

// Invalidate drops the cached entry for the key.
func (p *Policy) Invalidate(userID uint, platform string) error {
	return p.Store.Delete(userID, platform)
}

// refresh runs the fetch inside a singleflight keyed by (user, platform) and
// upserts the result. A cache-write failure is logged but the freshly fetched
// payload is still returned, since it remains usable for the current pass.
func (p *Policy) refresh(userID uint, platform string, refresh RefreshFunc) ([]byte, error) {
	key := fmt.Sprintf("%d/%s", userID, platform)
	payload, err, _ := p.group.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		fresh, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		if err := p.Store.Put(userID, platform, fresh, p.Now()); err != nil {
			p.Logger.Printf("cache write failed for %s: %v", key, err)
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return payload.([]byte), nil
}
