package compute

import (
	"context"
	"fmt"
	"sort"
)

// Backend runs a range of independent work items, typically row blocks of a
// render, and blocks until all of them finished or ctx was canceled.
type Backend interface {
	Name() string
	Available() bool
	Dispatch(ctx context.Context, n, chunk int, fn func(start, end int)) error
	Cleanup()
}

var activeBackend Backend

func init() {
	// GPU if a device is present, else CPU
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil && activeBackend != b {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	gpu := NewGPUBackend()
	if gpu.Available() {
		return gpu
	}
	return NewCPUBackend(0)
}

var factories = map[string]func(workers int) Backend{
	"auto":   func(int) Backend { return AutoSelectBackend() },
	"cpu":    func(w int) Backend { return NewCPUBackend(w) },
	"serial": func(int) Backend { return NewSerialBackend() },
	"gpu":    func(int) Backend { return NewGPUBackend() },
}

// ByName returns a fresh backend. workers only applies to the CPU backend;
// zero means one worker per CPU.
func ByName(name string, workers int) (Backend, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, Names())
	}
	return fn(workers), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChunkSize picks a block size that gives each worker several blocks, so
// slow rows near basin boundaries do not leave workers idle.
func ChunkSize(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	chunk := n / (workers * 4)
	if chunk < 1 {
		chunk = 1
	}
	return chunk
}
