package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable means the tagger's verb tables could not be loaded.
	ErrModelUnavailable = errors.New("morphology model unavailable")
	ErrRemoteService    = errors.New("remote analysis service failed")
)

// RemoteServiceError is always recoverable: the remote engine falls back to patterns.
type RemoteServiceError struct {
	Op  string
	Err error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrRemoteService, e.Op, e.Err)
}

func (e *RemoteServiceError) Unwrap() []error {
	return []error{ErrRemoteService, e.Err}
}
