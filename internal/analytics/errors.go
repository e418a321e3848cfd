package analytics

import "errors"

var (
	// ErrEmptyRange signals that no usable observations fell inside the
	// requested range. Recoverable: callers decide whether "no data yet"
	// is a valid answer or a client error.
	ErrEmptyRange = errors.New("no observations in range")

	// ErrInvalidGoalConfig signals a goal whose target or enumerations are
	// malformed. Never corrected silently; a broken goal must not yield a
	// misleading progress value.
	ErrInvalidGoalConfig = errors.New("invalid goal configuration")

	// ErrOutOfRange marks an observation whose value violates its metric
	// type's bounds. Such observations are excluded from aggregation
	// rather than aborting the computation.
	ErrOutOfRange = errors.New("observation value out of range")
)
