// Package main provides the entry point for hashrest-cli.
//
// hashrest-cli calls REST endpoints protected by a HashREST proof of work:
// for every request it searches for a token whose SHA-256 digest has the
// endpoint's number of leading zero hex digits and sends it in the
// HashREST header.
package main
