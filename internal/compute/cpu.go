package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type CPUBackend struct {
	workers int
}

// NewCPUBackend returns a backend running up to workers blocks at once;
// workers <= 0 means runtime.NumCPU().
func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Dispatch(ctx context.Context, n, chunk int, fn func(start, end int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	if chunk < 1 {
		chunk = 1
	}

	if n <= chunk || c.workers == 1 {
		return dispatchSerial(ctx, n, chunk, fn)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for start := 0; start < n; start += chunk {
		if gctx.Err() != nil {
			break
		}
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// SerialBackend runs every block on the calling goroutine.
type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string    { return "serial" }
func (s *SerialBackend) Available() bool { return true }
func (s *SerialBackend) Cleanup()        {}

func (s *SerialBackend) Dispatch(ctx context.Context, n, chunk int, fn func(start, end int)) error {
	if chunk < 1 {
		chunk = 1
	}
	return dispatchSerial(ctx, n, chunk, fn)
}

func dispatchSerial(ctx context.Context, n, chunk int, fn func(start, end int)) error {
	for start := 0; start < n; start += chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(start, min(start+chunk, n))
	}
	return ctx.Err()
}
