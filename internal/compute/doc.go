// Package compute provides the execution backends used to spread a render
// across hardware.
//
//   - cpu: row blocks on an errgroup bounded to runtime.NumCPU() workers
//   - serial: every block on the calling goroutine
//   - gpu: reserved for a device kernel; reports unavailable and falls
//     back to the CPU
//
// # Usage
//
//	backend := compute.GetBackend()
//	err := backend.Dispatch(ctx, rows, compute.ChunkSize(rows, runtime.NumCPU()),
//		func(start, end int) { ... })
//
// Blocks must write disjoint regions of shared output; backends do not
// synchronise fn beyond waiting for it to return.
package compute
