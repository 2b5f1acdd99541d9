package pipeline

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/kbukum/fluxkit/errors"
)

// recorder captures the three subscriber channels in delivery order.
type recorder[T any] struct {
	events []string
	values []T
	err    error
	errs   int
	done   int
}

func (r *recorder[T]) subscriber() Subscriber[T] {
	return Subscriber[T]{
		OnNext: func(v T) {
			r.events = append(r.events, "next")
			r.values = append(r.values, v)
		},
		OnError: func(err error) {
			r.events = append(r.events, "error")
			r.err = err
			r.errs++
		},
		OnComplete: func() {
			r.events = append(r.events, "complete")
			r.done++
		},
	}
}

func TestSubscribe_OrderAndCompletion(t *testing.T) {
	var rec recorder[int]
	if err := Subscribe(context.Background(), Range(1, 5), rec.subscriber()); err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3, 4, 5}; !slices.Equal(rec.values, want) {
		t.Errorf("values = %v, want %v", rec.values, want)
	}
	if rec.done != 1 || rec.errs != 0 {
		t.Errorf("complete=%d error=%d, want 1 and 0", rec.done, rec.errs)
	}
	if last := rec.events[len(rec.events)-1]; last != "complete" {
		t.Errorf("last event = %q, want complete", last)
	}
}

func TestSubscribe_EmptyCompletes(t *testing.T) {
	var rec recorder[string]
	if err := Subscribe(context.Background(), Empty[string](), rec.subscriber()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(rec.events, []string{"complete"}) {
		t.Errorf("events = %v", rec.events)
	}
}

func TestSubscribe_FaultStopsSequence(t *testing.T) {
	pulled := 0
	p := Map(Range(1, 10), func(_ context.Context, n int) (int, error) {
		pulled++
		if n == 3 {
			return 0, apperrors.InvalidFormat("3", "even")
		}
		return n, nil
	})
	var rec recorder[int]
	err := Subscribe(context.Background(), p, rec.subscriber())
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidFormat) {
		t.Fatalf("expected INVALID_FORMAT, got %v", err)
	}
	if !slices.Equal(rec.events, []string{"next", "next", "error"}) {
		t.Errorf("events = %v", rec.events)
	}
	if rec.err != err {
		t.Errorf("OnError received %v, returned %v", rec.err, err)
	}
	if pulled != 3 {
		t.Errorf("pulled %d elements after fault, want 3", pulled)
	}
}

func TestSubscribe_NilElementFaults(t *testing.T) {
	type user struct{ name string }
	p := RequireNonNil(Just[*user](&user{"a"}, nil, &user{"b"}), "doOnNext")
	var rec recorder[*user]
	err := Subscribe(context.Background(), p, rec.subscriber())
	if !apperrors.IsCode(err, apperrors.ErrCodeEmptyValue) {
		t.Fatalf("expected EMPTY_VALUE, got %v", err)
	}
	if len(rec.values) != 1 || rec.values[0].name != "a" {
		t.Errorf("values = %v", rec.values)
	}
	if rec.errs != 1 || rec.done != 0 {
		t.Errorf("error=%d complete=%d, want 1 and 0", rec.errs, rec.done)
	}
}

func TestSubscribe_StagePanicRecovered(t *testing.T) {
	p := Map(Just(1, 2), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			panic("stage exploded")
		}
		return n, nil
	})
	var rec recorder[int]
	err := Subscribe(context.Background(), p, rec.subscriber())
	if !apperrors.IsCode(err, apperrors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
	if !strings.Contains(err.Error(), "stage exploded") {
		t.Errorf("panic value lost: %v", err)
	}
	if !slices.Equal(rec.events, []string{"next", "error"}) {
		t.Errorf("events = %v", rec.events)
	}
}

func TestSubscribe_OnNextPanicRecovered(t *testing.T) {
	closed := false
	src := FromFunc(func(_ context.Context) Iterator[int] {
		return &closeSpy[int]{Iterator: Just(1, 2).Iter(context.Background()), closed: &closed}
	})
	errs := 0
	err := Subscribe(context.Background(), src, Subscriber[int]{
		OnNext:     func(int) { panic(errors.New("consumer exploded")) },
		OnError:    func(error) { errs++ },
		OnComplete: func() { t.Error("OnComplete after panic") },
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
	if errs != 1 {
		t.Errorf("OnError called %d times", errs)
	}
	if !closed {
		t.Error("iterator not closed after panic")
	}
}

func TestSubscribe_OnCompletePanicRecovered(t *testing.T) {
	var values []int
	errs := 0
	err := Subscribe(context.Background(), Just(1), Subscriber[int]{
		OnNext:     func(v int) { values = append(values, v) },
		OnError:    func(error) { errs++ },
		OnComplete: func() { panic("completion exploded") },
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
	if !strings.Contains(err.Error(), "completion exploded") {
		t.Errorf("panic value lost: %v", err)
	}
	if errs != 0 {
		t.Errorf("OnError called %d times after completion", errs)
	}
	if !slices.Equal(values, []int{1}) {
		t.Errorf("values = %v", values)
	}
}

func TestSubscribe_OnErrorPanicRecovered(t *testing.T) {
	boom := errors.New("boom")
	errs := 0
	err := Subscribe(context.Background(), Fail[int](boom), Subscriber[int]{
		OnError: func(error) {
			errs++
			panic("error handler exploded")
		},
		OnComplete: func() { t.Error("OnComplete after fault") },
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
	if !strings.Contains(err.Error(), "error handler exploded") {
		t.Errorf("panic value lost: %v", err)
	}
	if errs != 1 {
		t.Errorf("OnError called %d times, want 1", errs)
	}
}

func TestSubscribe_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var rec recorder[int]
	p := Tap(Range(0, 100), func(_ context.Context, n int) error {
		if n == 2 {
			cancel()
		}
		return nil
	})
	err := Subscribe(ctx, p, rec.subscriber())
	if !apperrors.IsCode(err, apperrors.ErrCodeCanceled) {
		t.Fatalf("expected CANCELED, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cause lost: %v", err)
	}
	if rec.done != 0 || rec.errs != 1 {
		t.Errorf("complete=%d error=%d", rec.done, rec.errs)
	}
	if len(rec.values) != 3 {
		t.Errorf("values = %v, want 3 before cancel took effect", rec.values)
	}
}

func TestSubscribe_FilterAndLowercase(t *testing.T) {
	type person struct{ name, surname string }
	p := Map(Just("John Rambo", "Sofia Vergara"), func(_ context.Context, full string) (person, error) {
		parts := strings.Split(full, " ")
		return person{parts[0], parts[1]}, nil
	})
	p = Filter(p, func(u person) bool { return strings.EqualFold(u.name, "sofia") })
	p = Map(p, func(_ context.Context, u person) (person, error) {
		return person{strings.ToLower(u.name), strings.ToLower(u.surname)}, nil
	})

	var got []person
	if err := SubscribeNext(context.Background(), p, func(u person) { got = append(got, u) }); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (person{"sofia", "vergara"}) {
		t.Errorf("got %v, want [{sofia vergara}]", got)
	}
}

func TestSubscribe_NilCallbacks(t *testing.T) {
	if err := Subscribe(context.Background(), Just(1), Subscriber[int]{}); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := Subscribe(context.Background(), Fail[int](boom), Subscriber[int]{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

type closeSpy[T any] struct {
	Iterator[T]
	closed *bool
}

func (c *closeSpy[T]) Close() error {
	*c.closed = true
	return c.Iterator.Close()
}
