package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients of external systems
// (identity provider, event bus backends, redis, kafka) return these, usually
// wrapped, so services can decide what a caller gets to see.
//
//   - ErrUnavailable: the remote system could not be reached or answered 5xx
//   - ErrRejected: the remote system answered and refused the request
//   - ErrTimeout: the call exceeded its deadline
//   - ErrCircuitOpen: the call was skipped because a breaker is open
//   - ErrNotFound: the remote entity does not exist
var (
	ErrNotFound    = errors.New("not found")
	ErrRejected    = errors.New("rejected")
	ErrTimeout     = errors.New("timeout")
	ErrUnavailable = errors.New("unavailable")
	ErrCircuitOpen = errors.New("circuit open")
)
