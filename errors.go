package syncname

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrNoFileName     = errors.New("no file name")
	ErrSuffixMismatch = errors.New("suffix mismatch")
	ErrNoParent       = errors.New("no parent")
)

// PathError records a failed path query together with the path it was made on.
// It unwraps to one of ErrNoFileName, ErrSuffixMismatch or ErrNoParent.
type PathError struct {
	Op     string
	Path   string
	Suffix string
	Err    error
}

var _ error = (*PathError)(nil)

func newPathError(op, path string, err error) error {
	return &PathError{Op: op, Path: displayPath(path), Err: err}
}

func newSuffixError(op, path, suffix string) error {
	return &PathError{Op: op, Path: displayPath(path), Suffix: suffix, Err: ErrSuffixMismatch}
}

func (err *PathError) Error() string {
	if err == nil {
		return "(*PathError)(nil)"
	}
	message := err.Err.Error() + ": " + err.Op + ": "
	switch {
	case errors.Is(err.Err, ErrNoFileName):
		message += "path did not have a file name: "
	case errors.Is(err.Err, ErrSuffixMismatch):
		message += "path did not end in " + err.Suffix + ": "
	case errors.Is(err.Err, ErrNoParent):
		message += "path does not have a parent: "
	}
	return message + err.Path
}

func (err *PathError) Unwrap() error {
	return err.Err
}

// displayPath replaces invalid UTF-8 so the path can be printed.
func displayPath(p string) string {
	if utf8.ValidString(p) {
		return p
	}
	return strings.ToValidUTF8(p, string(utf8.RuneError))
}
