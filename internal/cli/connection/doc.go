// Package connection sends HashREST requests for hashrest-cli.
//
//   - http.go: HTTP client that attaches the proof-of-work header
//   - pace.go: rate limiter spacing repeated calls
//
// Requests are sent once. A rejected or failed request is reported to
// the caller and never retried.
package connection
