// Package ctxerr provides functions to wrap errors with annotations and
// stack traces, and to hand those errors to a handler stored in the context
// once they bubbled back to the top of the call stack.
//
// Typical uses of this package should be to call New or Wrap[f] as close as
// possible from where the error is encountered (or where it needs to be
// created for New), and then to call Handle with the error only once, e.g. in
// the CLI command. It is fine to wrap the error with more annotations along
// the way, by calling Wrap[f].
package ctxerr

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rotisserie/eris"
)

type key int

const errHandlerKey key = 0

// Handler receives the errors passed to Handle.
type Handler interface {
	Store(ctx context.Context, err error) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, err error) error

func (f HandlerFunc) Store(ctx context.Context, err error) error {
	return f(ctx, err)
}

// NewContext returns a context derived from ctx that contains the provided
// error handler.
func NewContext(ctx context.Context, eh Handler) context.Context {
	return context.WithValue(ctx, errHandlerKey, eh)
}

func fromContext(ctx context.Context) Handler {
	v, _ := ctx.Value(errHandlerKey).(Handler)
	return v
}

// New creates a new error with the provided error message.
func New(ctx context.Context, errMsg string) error {
	return ensureCommonMetadata(ctx, errors.New(errMsg))
}

// Wrap annotates err with the provided message.
func Wrap(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}
	err = ensureCommonMetadata(ctx, err)
	// do not wrap with eris.Wrap, as we want only the root error closest to the
	// actual error condition to capture the stack trace, others just wrap using
	// pkg/errors.
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with the provided formatted message.
func Wrapf(ctx context.Context, err error, fmsg string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	err = ensureCommonMetadata(ctx, err)
	return errors.Wrapf(err, fmsg, args...)
}

// Cause returns the root error in err's chain.
func Cause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// Handle handles err by passing it to the registered error handler, if any.
func Handle(ctx context.Context, err error) error {
	if eh := fromContext(ctx); eh != nil {
		return eh.Store(ctx, err)
	}
	return err
}

func ensureCommonMetadata(ctx context.Context, err error) error {
	var sf interface{ StackFrames() []uintptr }
	if err != nil && !errors.As(err, &sf) {
		// no eris error nowhere in the chain, add the common metadata with the stack trace
		err = eris.Wrapf(err, "timestamp: %s", time.Now().Format(time.RFC3339))
	}
	return err
}
