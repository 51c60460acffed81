package ai

import "errors"

var (
	// ErrNotConfigured indicates no API key was supplied.
	ErrNotConfigured = errors.New("generative text service not configured")
	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrMalformedResponse indicates the reply held no decodable JSON object.
	ErrMalformedResponse = errors.New("model returned malformed JSON")
)

// TransientError marks a failure that may succeed if the caller tries again.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string { return e.err.Error() }
func (e *TransientError) Unwrap() error { return e.err }

// FatalError marks a failure that will repeat on retry.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string { return e.err.Error() }
func (e *FatalError) Unwrap() error { return e.err }

func transient(err error) error { return &TransientError{err: err} }
func fatal(err error) error     { return &FatalError{err: err} }

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsFatal reports whether err will repeat on retry.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
