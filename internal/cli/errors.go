package cli

import (
	"fmt"
)

// IncompleteError reports a search that was stopped by a timeout or
// the step limit before it could be exhausted.
type IncompleteError struct {
	Found int
	Err   error
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("search incomplete after %d results: %s", e.Found, e.Err)
}

func (e *IncompleteError) Unwrap() error {
	return e.Err
}
