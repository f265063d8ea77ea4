package compute

import "context"

// GPUBackend is a placeholder until there is a device kernel for Newton
// iteration. It reports itself unavailable and runs on the CPU.
type GPUBackend struct {
	cpu *CPUBackend
}

func NewGPUBackend() *GPUBackend {
	return &GPUBackend{cpu: NewCPUBackend(0)}
}

func (g *GPUBackend) Name() string    { return "gpu (not available)" }
func (g *GPUBackend) Available() bool { return false }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) Dispatch(ctx context.Context, n, chunk int, fn func(start, end int)) error {
	return g.cpu.Dispatch(ctx, n, chunk, fn)
}

func (g *GPUBackend) Workers() int { return g.cpu.Workers() }
