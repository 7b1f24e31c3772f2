// Package cli contains the command line interface for droll.
//
// # Usage
//
// The default command compiles and rolls the dice expressions given as
// arguments:
//
//	droll '3d6+2'
//	droll --keep --explode '10d6'
//	droll --times 6 '4d6' --filter drop-lowest
//
// Expressions can also be read from files or stdin with --source, one
// expression per line. Variable bindings are supplied as a YAML mapping
// with --bindings:
//
//	droll -b stats.yaml 'sd20+m'
//
// # Subcommands
//
//   - roll: compile and roll expressions (default)
//   - fmt:  parse expressions and print their canonical form
//   - repl: interactive read-roll-print loop
//   - init: write a default configuration file
//
// # Configuration
//
// Flag defaults load from a YAML config file in the user config directory
// (see [resolveYAML]); command-line flags override config values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o droll .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
