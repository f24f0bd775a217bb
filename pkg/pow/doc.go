// Package pow provides HashREST proof-of-work token generation.
//
// A HashREST token binds a request to a target URL and carries proof that
// the sender spent CPU time producing it. The token is plain text:
//
//	<epoch-millis>;<target>;<nonce>;<counter>
//
//   - epoch-millis: request time in milliseconds since the Unix epoch
//   - target: the URL the token is sent to (must not contain ';')
//   - nonce: 6 random lowercase ASCII letters
//   - counter: decimal search counter, starting at 0
//
// A token satisfies difficulty d when the lowercase hex SHA-256 digest of
// its UTF-8 text starts with d '0' characters. Generating a token for
// difficulty d takes about 16^d hashes; verifying it takes one.
//
// Security:
//
//   - The nonce only varies the search start; it is not a secret and is
//     drawn from math/rand/v2
//   - Digests are bit-compatible with any verifier that hashes the header
//     value with SHA-256 and compares lowercase hex
package pow
