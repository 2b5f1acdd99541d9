package pipeline

import (
	"context"

	"github.com/kbukum/fluxkit/errors"
)

// Subscriber receives the output of a pipeline on three channels. Any of
// the callbacks may be nil.
type Subscriber[T any] struct {
	// OnNext is called once per value, in source order.
	OnNext func(T)
	// OnError is called at most once, with the first fault. No value is
	// pulled after it.
	OnError func(error)
	// OnComplete is called exactly once after the last value, and only when
	// no fault occurred.
	OnComplete func()
}

// Subscribe pulls p to completion on the calling goroutine and delivers
// the result to s. A panic raised by a stage or by OnNext is recovered and
// delivered to OnError as an INTERNAL fault; context cancellation is
// delivered as a CANCELED fault. The fault, if any, is also returned. A
// panic in OnComplete or OnError is only returned.
func Subscribe[T any](ctx context.Context, p *Pipeline[T], s Subscriber[T]) (err error) {
	iter := p.create(ctx)
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
		if cerr := iter.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			if perr := guard(func() {
				if s.OnError != nil {
					s.OnError(err)
				}
			}); perr != nil {
				err = perr
			}
			return
		}
		if s.OnComplete != nil {
			err = guard(s.OnComplete)
		}
	}()

	for {
		if cerr := ctx.Err(); cerr != nil {
			return errors.Canceled(cerr)
		}
		val, ok, nerr := iter.Next(ctx)
		if nerr != nil {
			if ctx.Err() != nil && !errors.IsAppError(nerr) {
				return errors.Canceled(nerr)
			}
			return nerr
		}
		if !ok {
			return nil
		}
		if s.OnNext != nil {
			s.OnNext(val)
		}
	}
}

// guard runs a terminal callback and returns its panic, if any, as an
// INTERNAL fault. The fault is not delivered to OnError again.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	fn()
	return nil
}

// SubscribeNext is the single-callback form of Subscribe: faults are only
// returned, and completion is silent.
func SubscribeNext[T any](ctx context.Context, p *Pipeline[T], onNext func(T)) error {
	return Subscribe(ctx, p, Subscriber[T]{OnNext: onNext})
}
