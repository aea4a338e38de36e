package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for release API calls. Callers should use errors.Is to check.
var (
	// ErrNetwork indicates a transport level failure: DNS, refused connection, reset stream.
	ErrNetwork = errors.New("remote: network failure")
	// ErrStatus indicates the server answered with a non-success status.
	ErrStatus = errors.New("remote: unexpected HTTP status")
	// ErrTimeout indicates the request did not complete before its deadline.
	ErrTimeout = errors.New("remote: timed out")
	// ErrDecode indicates the response body was not the expected JSON document.
	ErrDecode = errors.New("remote: malformed response")
)

// StatusError carries the status of a non-success response. It matches ErrStatus.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d from %s", ErrStatus, e.Code, e.URL)
	}
	return fmt.Sprintf("%s: %d from %s: %s", ErrStatus, e.Code, e.URL, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Transport classifies an error returned by http.Client.Do or a body read as ErrTimeout or ErrNetwork.
func Transport(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
