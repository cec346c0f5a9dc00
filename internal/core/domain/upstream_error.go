package domain

import "fmt"

// UpstreamError reports a failed call against the remote employee collection:
// either a non-success HTTP status or a transport failure (StatusCode == 0).
// The remote store returns no structured error body worth carrying.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("employee store: %s returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("employee store: %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
