package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// EmbeddingError reports a failure of the embeddings capability.
// Transient failures (timeouts, rate limits, 5xx) may be retried by the
// caller; permanent ones (bad input, auth) will not succeed on retry.
type EmbeddingError struct {
	Transient bool
	Err       error
}

func (e *EmbeddingError) Error() string {
	if e.Transient {
		return fmt.Sprintf("embedding failure (transient): %v", e.Err)
	}
	return fmt.Sprintf("embedding failure (permanent): %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError reports a failure of the generation capability, with the
// same transient/permanent split as EmbeddingError.
type GenerationError struct {
	Transient bool
	Err       error
}

func (e *GenerationError) Error() string {
	if e.Transient {
		return fmt.Sprintf("generation failure (transient): %v", e.Err)
	}
	return fmt.Sprintf("generation failure (permanent): %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a capability failure worth retrying.
func IsTransient(err error) bool {
	var embErr *EmbeddingError
	if errors.As(err, &embErr) {
		return embErr.Transient
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Transient
	}
	return false
}

// transientStatus classifies an HTTP status code from the provider.
// Rate limits and server errors are retryable; other non-2xx codes
// (bad request, auth, payload too large) are not.
func transientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// transportTransient classifies a transport-level error. Context
// cancellation is the caller's own doing and counts as permanent.
func transportTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	// Connection refused, DNS hiccups and friends: assume retryable.
	return true
}
