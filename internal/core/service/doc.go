// Package service provides domain services for HashREST.
//
// ProofService wraps the pow generator: it times searches, reports their
// outcome to a SearchRecorder, logs the winning token and maps pow errors
// to domain errors. ProveAll and Bench run independent searches in
// parallel with a bounded number of workers.
package service
