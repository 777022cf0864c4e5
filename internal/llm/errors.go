package llm

import "errors"

// Sentinels returned by the assistant client. The planner treats all of them
// as a reason to fall back to the built-in synthesizer.
var (
	// ErrUnavailable means no assistant endpoint is configured or it refused
	// the connection.
	ErrUnavailable = errors.New("plan assistant unavailable")
	ErrTimeout     = errors.New("plan assistant timed out")
	// ErrInvalidOutput means the reply was empty or did not decode into the
	// expected adjustment shape.
	ErrInvalidOutput  = errors.New("plan assistant returned unusable output")
	ErrRetryExhausted = errors.New("plan assistant retries exhausted")
)
