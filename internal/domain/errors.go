package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrModelProviderError signals a language model provider failure.
	ErrModelProviderError = errors.New("model provider error")
	// ErrModelTimeout signals that the language model did not answer in time.
	ErrModelTimeout = errors.New("model timeout")
	// ErrRateLimited signals that the outbound model rate limit was exhausted.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
