// Package output renders hashrest-cli results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned key/value and list tables
//   - json.go, yaml.go: machine-readable output
//   - spinner.go: live attempt counter while a search runs
//   - progress.go: trial progress bar for bench
//
// Progress indicators write to stderr so stdout stays parseable.
package output
