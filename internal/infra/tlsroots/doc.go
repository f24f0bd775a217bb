// Package tlsroots builds the TLS client configuration used to reach a
// HashREST server over HTTPS.
//
// Extra trusted roots come from a PEM file or a directory of .pem/.crt
// files and are added on top of the system pool. A client key pair may be
// supplied for servers that require mutual TLS.
package tlsroots
