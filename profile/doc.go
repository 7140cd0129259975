// Package profile provides optional runtime profiling for the vdf command.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread, trace.
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode
// (e.g., cpu.pprof, mem.pprof). Analyze them with:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// With the tag, the package also imports [net/http/pprof], registering its
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
