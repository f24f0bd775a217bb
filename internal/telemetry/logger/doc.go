// Package logger provides structured logging for HashREST.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and global default
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Masking of credentials in keys and URLs
//
// The CLI writes logs to stderr so that stdout carries only command output.
package logger
