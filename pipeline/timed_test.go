package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestInterval_TakeAndSpacing(t *testing.T) {
	period := 20 * time.Millisecond
	start := time.Now()
	got, err := Collect(context.Background(), Take(Interval(period), 3))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int64{0, 1, 2}) {
		t.Errorf("got %v, want [0 1 2]", got)
	}
	if elapsed := time.Since(start); elapsed < 3*period {
		t.Errorf("elapsed %v, want at least %v", elapsed, 3*period)
	}
}

func TestInterval_ZipWithRangeKeepsLeft(t *testing.T) {
	zipped := Zip(Range(1, 4), Interval(5*time.Millisecond), func(n int, _ int64) int { return n })
	last, ok, err := BlockLast(context.Background(), zipped)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || last != 4 {
		t.Errorf("got last=%d ok=%v, want 4", last, ok)
	}
}

func TestInterval_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := Collect(ctx, Interval(time.Hour))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDelay(t *testing.T) {
	d := 15 * time.Millisecond
	var stamps []time.Time
	p := Tap(Delay(Range(1, 3), d), func(_ context.Context, _ int) error {
		stamps = append(stamps, time.Now())
		return nil
	})
	start := time.Now()
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if stamps[0].Sub(start) < d {
		t.Errorf("first element not delayed: %v", stamps[0].Sub(start))
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < d {
			t.Errorf("gap %d = %v, want >= %v", i, gap, d)
		}
	}
}

func TestDelay_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, Delay(Just(1), time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLimit(t *testing.T) {
	every := 10 * time.Millisecond
	start := time.Now()
	got, err := Collect(context.Background(), Limit(Range(0, 4), every, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %v", got)
	}
	// first value passes immediately, the remaining three wait a token each
	if elapsed := time.Since(start); elapsed < 3*every-2*time.Millisecond {
		t.Errorf("elapsed %v, want about %v", elapsed, 3*every)
	}
}

func TestLimit_BurstPassesImmediately(t *testing.T) {
	start := time.Now()
	got, err := Collect(context.Background(), Limit(Range(0, 3), time.Hour, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("burst took %v", elapsed)
	}
}

func TestLimit_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	got, err := Collect(ctx, Limit(Range(0, 3), time.Hour, 1))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %v, want only the first value", got)
	}
}

func TestThrottle_BurstCollapses(t *testing.T) {
	got, err := Collect(context.Background(), Throttle(Range(0, 5), time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{0}) {
		t.Errorf("got %v, want [0]", got)
	}
}

func TestThrottle_SpacedValuesPass(t *testing.T) {
	window := 10 * time.Millisecond
	got, err := Collect(context.Background(), Throttle(Delay(Range(0, 3), 2*window), window))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("got %v, want [0 1 2]", got)
	}
}

func TestThrottle_DropsBetweenWindows(t *testing.T) {
	window := 30 * time.Millisecond
	src := Concat(Just("a", "b"), Delay(Just("c"), 2*window), Just("d"))
	got, err := Collect(context.Background(), Throttle(src, window))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("got %v, want [a c]", got)
	}
}
