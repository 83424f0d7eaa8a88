// Package chatbot orchestrates plan comparison and chat turns over the
// conversation store and the text-generation service.
package chatbot

import "errors"

var (
	// ErrInvalidRequest means caller input failed a structural precondition.
	// Never retried; no external call is made.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGenerationFailed means the external text-generation call itself
	// failed (timeout, malformed response, quota). A usable-but-empty
	// completion is not a failure and is masked with a fallback string.
	ErrGenerationFailed = errors.New("generation failed")
)
