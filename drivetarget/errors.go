package drivetarget

import (
	"errors"
)

var (
	ErrDriveError               = errors.New("drive error")
	ErrNotFound                 = errors.New("not found")
	ErrAlreadyExists            = errors.New("already exists")
	ErrNotAFile                 = errors.New("not a file")
	ErrNotADirectory            = errors.New("not a directory")
	ErrMultiParentsNotSupported = errors.New("multi parents not supported")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newDriveError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrDriveError,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
