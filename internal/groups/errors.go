package groups

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/groupadmin/internal/storage"
)

// Kind classifies service errors so transports can map them to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidArgument
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Sentinels for errors.Is checks against *Error values.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("unavailable")
)

// Error is returned by every Service operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalidArgument(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Err: fmt.Errorf(format, args...)}
}

// wrap classifies an error coming from the store or the latency strategy.
// Errors that are already *Error pass through.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	kind := KindInternal
	switch {
	case errors.Is(err, storage.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, storage.ErrConflict):
		kind = KindConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
