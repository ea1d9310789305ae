package upstream

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned on any 401 from the backend. Policy is global:
// callers must drop their client auth state and send the user back to login,
// regardless of which call tripped it.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoSearchSession means the trigger call answered without a session id.
// The search attempt is fatal and is not retried automatically.
var ErrNoSearchSession = errors.New("search trigger returned no session")

// APIError carries a non-2xx backend response with the most human-readable
// message that could be mined from the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
}
