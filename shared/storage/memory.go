package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type memoryDriver struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	watchers map[chan string]struct{}
}

// NewMemoryDriver returns a process-local driver. Every write is broadcast to
// the watchers registered on the same driver.
func NewMemoryDriver() Driver {
	return &memoryDriver{
		entries:  make(map[string]memoryEntry),
		watchers: make(map[chan string]struct{}),
	}
}

func (d *memoryDriver) Get(_ context.Context, key string) (string, bool, error) {
	d.mu.RLock()
	entry, ok := d.entries[key]
	d.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if entry.expired(time.Now()) {
		d.mu.Lock()
		if current, still := d.entries[key]; still && current.expired(time.Now()) {
			delete(d.entries, key)
		}
		d.mu.Unlock()

		return "", false, nil
	}

	return entry.value, true, nil
}

func (d *memoryDriver) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	d.mu.Lock()
	d.entries[key] = entry
	d.notify(key)
	d.mu.Unlock()

	return nil
}

func (d *memoryDriver) Delete(_ context.Context, key string) error {
	d.mu.Lock()
	delete(d.entries, key)
	d.notify(key)
	d.mu.Unlock()

	return nil
}

func (d *memoryDriver) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	var count int64

	entry, ok := d.entries[key]
	if ok && !entry.expired(now) {
		current, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not a counter: %w", key, err)
		}

		count = current
	} else {
		entry = memoryEntry{}
		if ttl > 0 {
			entry.expiresAt = now.Add(ttl)
		}
	}

	count++
	entry.value = strconv.FormatInt(count, 10)
	d.entries[key] = entry

	return count, nil
}

func (d *memoryDriver) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, watchBuffer)

	d.mu.Lock()
	d.watchers[ch] = struct{}{}
	d.mu.Unlock()

	go func() {
		<-ctx.Done()

		d.mu.Lock()
		delete(d.watchers, ch)
		close(ch)
		d.mu.Unlock()
	}()

	return ch, nil
}

// notify must be called with d.mu held.
func (d *memoryDriver) notify(key string) {
	for ch := range d.watchers {
		select {
		case ch <- key:
		default:
		}
	}
}
