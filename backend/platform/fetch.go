package platform

import (
	"context"
	"sync"
)

// Fetcher is implemented by every platform client.
type Fetcher interface {
	Platform() string
	Fetch(ctx context.Context, handle string) (Snapshot, error)
}

// FetchAll fans out one fetch per connected platform and gathers whatever
// succeeds. Individual failures do not abort the gather; the caller receives
// the snapshots that worked alongside the per-platform errors.
func FetchAll(ctx context.Context, fetchers map[string]Fetcher, handles map[string]string) (map[string]Snapshot, map[string]error) {
	var mu sync.Mutex
	var wg sync.WaitGroup
	snapshots := make(map[string]Snapshot)
	failures := make(map[string]error)

	for tag, fetcher := range fetchers {
		handle, ok := handles[tag]
		if !ok || handle == "" {
			continue
		}
		wg.Add(1)
		go func(tag, handle string, fetcher Fetcher) {
			defer wg.Done()
			snap, err := fetcher.Fetch(ctx, handle)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[tag] = err
				return
			}
			snapshots[tag] = snap
		}(tag, handle, fetcher)
	}
	wg.Wait()
	return snapshots, failures
}
