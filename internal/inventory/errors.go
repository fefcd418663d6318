package inventory

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// RemoteConnectionError is returned when a site cannot be reached, its
// certificate is not trusted, the credentials are refused or the call timed out.
type RemoteConnectionError struct {
	error
	URL     string
	Timeout bool
}

func NewRemoteConnectionError(url string, err error) *RemoteConnectionError {
	return &RemoteConnectionError{
		error:   fmt.Errorf("connection to %s failed: %w", url, err),
		URL:     url,
		Timeout: isTimeout(err),
	}
}

func (e *RemoteConnectionError) Unwrap() error {
	return e.error
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
