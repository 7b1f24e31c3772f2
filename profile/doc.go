// Package profile provides optional runtime profiling for the droll
// command.
//
// # Overview
//
// The package integrates [github.com/pkg/profile] behind conditional
// compilation. Profiling is opt-in at build time with the "pprof" build
// tag; without the tag every operation is a no-op with zero runtime
// overhead, and the profiling flags disappear from the CLI.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof
// tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
// A profiler is described by a [Config] function and started with
// [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", true
//	}
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The droll command exposes profiling flags when built with the pprof
// tag:
//
//	# Enable CPU profiling (writes to default cache directory)
//	./droll --pprof-mode cpu '3d6'
//
//	# Enable heap profiling with custom output directory
//	./droll --pprof-mode heap --pprof-dir ./profiles '3d6'
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/droll/pprof   (Linux/Unix)
//	~/Library/Caches/droll/pprof  (macOS)
//	%LocalAppData%\droll\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data:
//
//	go tool pprof ./droll /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// When built with the pprof tag, this package also imports
// [net/http/pprof], which registers HTTP handlers for runtime profiling
// at /debug/pprof/ if the application starts an HTTP server.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
