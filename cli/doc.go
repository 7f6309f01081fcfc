// Package cli contains the command line interface for flowc.
//
// # Usage
//
// The default subcommand parses a FlowDSL source file, dumps its AST, and
// prints the name table of every workflow built from its pure definitions:
//
//	flowc parse pipelines.flow
//	flowc --log-level=debug parse -
//
// Additional subcommands render the AST in alternate formats, scaffold a
// configuration file, and start an interactive session:
//
//	flowc fmt yaml pipelines.flow
//	flowc fmt json --indent=4 pipelines.flow
//	flowc init
//	flowc repl
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads a
// flat YAML config file and converts its keys to Kong flag values. Flags
// given on the command line always override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//   - --log-pretty: Colorized, human-oriented output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//		go build -tags pprof -o flowc .
//
//	  - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//	    heap, mem, mutex, thread, trace)
//	  - --pprof-dir: Set profile output directory (default:
//
// ~/.cache/flowc/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	flowc --log-level=debug --pprof-mode=cpu parse pipelines.flow
//
//	# Text format with heap profiling
//	flowc --log-format=text --pprof-mode=heap parse pipelines.flow
//
//	# Custom profile directory
//	flowc --pprof-mode=allocs --pprof-dir=/tmp/profiles parse pipelines.flow
package cli
