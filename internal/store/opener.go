package store

import (
	"context"
	"sync"
)

// OpenFunc opens a new store handle.
type OpenFunc func(ctx context.Context) (Store, error)

// Opener hands out a single store per process. Concurrent callers of Open
// receive the same handle; a failed open is not cached, so a later call retries.
type Opener struct {
	mu    sync.Mutex
	open  OpenFunc
	store Store
}

func NewOpener(open OpenFunc) *Opener {
	return &Opener{open: open}
}

// Open returns the shared store, opening it on first use.
func (o *Opener) Open(ctx context.Context) (Store, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store != nil {
		return o.store, nil
	}
	s, err := o.open(ctx)
	if err != nil {
		return nil, err
	}
	o.store = s
	return s, nil
}

// Close releases the shared store if one was opened.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store == nil {
		return nil
	}
	err := o.store.Close()
	o.store = nil
	return err
}
