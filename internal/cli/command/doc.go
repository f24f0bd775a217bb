// Package command provides CLI command definitions for hashrest-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: application, global flags, shared environment
//   - call.go: call and the greet/list/upload shortcuts
//   - generate.go: offline token generation
//   - inspect.go: token parsing and digest check
//   - bench.go: search cost per difficulty
//   - endpoints.go: endpoint catalog listing
//   - config.go: CLI configuration show/validate/init
//   - version.go: build information
//
// Commands follow a consistent pattern of parsing flags, calling the
// proof service or transport, and formatting output.
package command
