package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// LoadFunc produces a fresh snapshot.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

// FileLoader returns a LoadFunc that loads the database at path.
func FileLoader(path string) LoadFunc {
	return func(ctx context.Context) (*Snapshot, error) {
		return LoadFile(ctx, path)
	}
}

// Holder publishes the current snapshot and replaces it on reload.
//
// Thread-safety: Snapshot may be called concurrently with Reload. Readers
// see either the previous or the new snapshot, never a partial one.
type Holder struct {
	load    LoadFunc
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes reloads
}

// NewHolder performs the initial load. A failure is returned as is so the
// caller can abort startup.
func NewHolder(ctx context.Context, load LoadFunc) (*Holder, error) {
	snap, err := load(ctx)
	if err != nil {
		return nil, err
	}
	h := &Holder{load: load}
	h.current.Store(snap)
	return h, nil
}

// Snapshot returns the current snapshot.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

// Reload loads a new snapshot and swaps it in. On failure the previous
// snapshot stays current and the error is returned.
func (h *Holder) Reload(ctx context.Context) (*Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.load(ctx)
	if err != nil {
		slog.Warn("reload failed, keeping previous snapshot",
			"version", h.current.Load().Version(),
			"error", err,
		)
		return nil, err
	}
	prev := h.current.Swap(snap)
	slog.Info("snapshot replaced", "previous", prev.Version(), "current", snap.Version())
	return snap, nil
}
