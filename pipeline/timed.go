package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Interval emits 0, 1, 2, ... forever, the i-th value at (i+1)*period after
// the pipeline is first pulled. Ticks are scheduled at a fixed rate, so a
// slow consumer receives the overdue ticks back to back. Bound it with Take
// or by zipping it with a finite pipeline.
func Interval(period time.Duration) *Pipeline[int64] {
	return &Pipeline[int64]{
		create: func(_ context.Context) Iterator[int64] {
			return &intervalIter{period: period}
		},
	}
}

type intervalIter struct {
	period time.Duration
	start  time.Time
	n      int64
}

func (it *intervalIter) Next(ctx context.Context) (int64, bool, error) {
	if it.start.IsZero() {
		it.start = time.Now()
	}
	due := it.start.Add(time.Duration(it.n+1) * it.period)
	if err := sleepUntil(ctx, due); err != nil {
		return 0, false, err
	}
	v := it.n
	it.n++
	return v, true, nil
}

func (it *intervalIter) Close() error { return nil }

// Delay holds every value for d before emitting it, so consecutive values
// are at least d apart. The source is pulled only after the previous value
// has been delivered.
func Delay[T any](p *Pipeline[T], d time.Duration) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &delayIter[T]{source: p.create(ctx), d: d}
		},
	}
}

type delayIter[T any] struct {
	source Iterator[T]
	d      time.Duration
}

func (it *delayIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	if err := sleepUntil(ctx, time.Now().Add(it.d)); err != nil {
		return zero, false, err
	}
	return val, true, nil
}

func (it *delayIter[T]) Close() error { return it.source.Close() }

// Limit paces emission with a token bucket: on average one value per every,
// with up to burst values released back to back. Unlike Delay the first
// burst values pass immediately.
func Limit[T any](p *Pipeline[T], every time.Duration, burst int) *Pipeline[T] {
	if burst <= 0 {
		burst = 1
	}
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &limitIter[T]{
				source:  p.create(ctx),
				limiter: rate.NewLimiter(rate.Every(every), burst),
			}
		},
	}
}

type limitIter[T any] struct {
	source  Iterator[T]
	limiter *rate.Limiter
}

func (it *limitIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	r := it.limiter.Reserve()
	if err := sleepUntil(ctx, time.Now().Add(r.Delay())); err != nil {
		r.Cancel()
		return zero, false, err
	}
	return val, true, nil
}

func (it *limitIter[T]) Close() error { return it.source.Close() }

// Throttle keeps the first value of every interval window and drops the
// values that arrive before the window has passed. Unlike Limit it never
// waits; a burst collapses to its first value.
func Throttle[T any](p *Pipeline[T], interval time.Duration) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &throttleIter[T]{source: p.create(ctx), interval: interval}
		},
	}
}

type throttleIter[T any] struct {
	source   Iterator[T]
	interval time.Duration
	lastEmit time.Time
}

func (it *throttleIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		now := time.Now()
		if it.lastEmit.IsZero() || now.Sub(it.lastEmit) >= it.interval {
			it.lastEmit = now
			return val, true, nil
		}
	}
}

func (it *throttleIter[T]) Close() error { return it.source.Close() }

// sleepUntil blocks until t or until ctx is done.
func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
