// Package domain defines the core domain models for HashREST.
//
// Domain models are plain values without IO dependencies:
//
//   - Endpoint: a remote operation and the difficulty it demands
//   - Catalog: the set of endpoints the CLI knows by name
//   - Proof: a generated token together with how it was found
//   - Errors: coded domain errors
package domain
