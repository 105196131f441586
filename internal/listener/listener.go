// Package listener delivers accepted declaration records to output sinks.
//
// Delivery is two-phase: Handle is called once per record in discovery order, then Finalize is
// called once on every listener that implements Finalizer.
package listener

import (
	"context"
	"sync"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// Listener receives accepted records one at a time.
type Listener interface {
	Handle(ctx context.Context, decl *declaration.Declaration) error
}

// Finalizer is implemented by listeners that need to run once after the last record.
type Finalizer interface {
	Finalize(ctx context.Context) error
}

// Func is an adaptor to allow the use of ordinary functions as listeners.
type Func func(ctx context.Context, decl *declaration.Declaration) error

// Handle implements Listener.
func (fn Func) Handle(ctx context.Context, decl *declaration.Declaration) error {
	return fn(ctx, decl)
}

// Collector accumulates every record it is handed.
type Collector struct {
	decls     declaration.Declarations
	finalized int
	mu        sync.Mutex
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Handle implements Listener.
func (c *Collector) Handle(_ context.Context, decl *declaration.Declaration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.decls = append(c.decls, decl)

	return nil
}

// Finalize implements Finalizer.
func (c *Collector) Finalize(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finalized++

	return nil
}

// Declarations returns a copy of the collected records in the order they were handled.
func (c *Collector) Declarations() declaration.Declarations {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append(declaration.Declarations{}, c.decls...)
}

// Finalized returns how many times Finalize was called.
func (c *Collector) Finalized() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finalized
}
