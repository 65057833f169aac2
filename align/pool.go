package align

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("segeval: workspace pool closed")

// Pool manages a fixed set of Workspaces for concurrent alignment.
type Pool struct {
	workspaces chan *Workspace
	size       int
	mu         sync.Mutex
	closed     bool
}

// NewPool creates a pool of size workspaces. Sizes below 1 become 1.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		workspaces: make(chan *Workspace, size),
		size:       size,
	}
	for range size {
		pool.workspaces <- &Workspace{}
	}
	return pool
}

// Acquire gets a workspace from the pool, blocking if none available.
// Respects context cancellation. Returns ErrPoolClosed if the pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Workspace, error) {
	select {
	case w, ok := <-p.workspaces:
		if !ok {
			return nil, ErrPoolClosed
		}
		return w, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a workspace to the pool.
func (p *Pool) Release(w *Workspace) {
	if w == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.workspaces <- w:
	default:
		// Pool full; drop the extra workspace
	}
}

// Close drains the pool. Workspaces released afterwards are dropped.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workspaces)
	for range p.workspaces {
	}
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
