package usage

import "errors"

// Domain errors for usage counting
var (
	ErrNoCounterRegistered = errors.New("usage.errors.no_counter_registered")
	ErrCountUnavailable    = errors.New("usage.errors.count_unavailable")
)
