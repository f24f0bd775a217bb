package pow

import "errors"

var (
	// ErrInvalidDifficulty is returned for a difficulty outside [0, MaxDifficulty].
	ErrInvalidDifficulty = errors.New("pow: invalid difficulty")

	// ErrInvalidTarget is returned when a target contains the field delimiter.
	ErrInvalidTarget = errors.New("pow: invalid target")

	// ErrInvalidNonce is returned when a search base has a malformed nonce.
	ErrInvalidNonce = errors.New("pow: invalid nonce")

	// ErrMalformedToken is returned by Parse for text that is not a token.
	ErrMalformedToken = errors.New("pow: malformed token")

	// ErrCanceled is returned when a search is stopped by its context.
	ErrCanceled = errors.New("pow: search canceled")
)
