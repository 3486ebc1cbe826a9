package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the handler maps to HTTP statuses.
// ErrUnsupportedFormat and ErrNoFaceDetected are caller-visible;
// ErrStorage is surfaced to the caller as a generic message only.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNoFaceDetected    = errors.New("no face detected in the image")
	ErrStorage           = errors.New("failed to save uploaded file")
)

// InvalidInputError means the backend rejected the image for a reason
// other than a missing face (corrupt data, unreadable image). The
// backend's message is passed through to the caller.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// BackendError wraps any unexpected classifier failure. Details are
// logged server-side and never exposed to the caller.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("emotion backend failure: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
