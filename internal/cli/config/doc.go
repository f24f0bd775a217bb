// Package config provides CLI configuration for hashrest-cli.
//
//   - spec.go: CLIConfig struct (~/.hashrest/cli.yaml)
//   - loader.go: loading, validation and saving
//
// Values are resolved from built-in defaults, the YAML file, HASHREST_*
// environment variables and finally command-line flags, in that order.
package config
