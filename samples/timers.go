package samples

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kbukum/fluxkit/model"
	"github.com/kbukum/fluxkit/pipeline"
)

func zipRangesSample(ctx context.Context, env Env) error {
	doubled := pipeline.Map(pipeline.Just(1, 2, 3, 4), func(_ context.Context, i int) (int, error) {
		return i * 2, nil
	})
	zipped := pipeline.Zip(doubled, pipeline.Range(0, 4), func(first, second int) string {
		return fmt.Sprintf("First flux: %d, Second flux: %d", first, second)
	})
	return pipeline.Subscribe(ctx, zipped, pipeline.Subscriber[string]{
		OnNext:  env.Out.Element,
		OnError: env.Out.Fault,
	})
}

func intervalSample(ctx context.Context, env Env) error {
	paced := pipeline.Zip(
		pipeline.Range(1, env.Settings.RangeCount),
		pipeline.Interval(env.Settings.IntervalPeriod),
		func(i int, _ int64) int { return i },
	)
	paced = pipeline.Tap(paced, func(_ context.Context, i int) error {
		env.Out.Element(strconv.Itoa(i))
		return nil
	})
	return blockLast(ctx, paced, env.Out)
}

func delaySample(ctx context.Context, env Env) error {
	delayed := pipeline.Delay(pipeline.Range(1, env.Settings.RangeCount), env.Settings.Delay)
	delayed = pipeline.Tap(delayed, func(_ context.Context, i int) error {
		env.Out.Element(strconv.Itoa(i))
		return nil
	})
	return blockLast(ctx, delayed, env.Out)
}

// mergePacedSample produces the team names and John Doe's comments on their
// own goroutines, merges them as they arrive and paces the merged stream.
func mergePacedSample(ctx context.Context, env Env) error {
	names := pipeline.Map(pipeline.FromSlice(newTeam()), func(_ context.Context, u *model.User) (string, error) {
		return u.FullName(), nil
	})
	comments := pipeline.FlatMap(johnDoeComments(), func(_ context.Context, c *model.Comment) (*pipeline.Pipeline[string], error) {
		return pipeline.FromSlice(c.Comments), nil
	})

	merged := pipeline.Merge(pipeline.Buffer(names, 2), pipeline.Buffer(comments, 2))
	paced := pipeline.Limit(merged, env.Settings.IntervalPeriod, 1)

	return pipeline.Subscribe(ctx, paced, subscriber(env.Out, func(s string) string { return s }, func() {
		env.Out.Log("The observer has finished correctly")
	}))
}

// throttleSample sends a burst of three names, then two late arrivals. Only
// the first name of the burst survives the throttle window.
func throttleSample(ctx context.Context, env Env) error {
	team := newTeam()
	names := make([]string, len(team))
	for i, u := range team {
		names[i] = u.FullName()
	}
	src := pipeline.Concat(
		pipeline.FromSlice(names[:3]),
		pipeline.Delay(pipeline.FromSlice(names[3:]), 2*env.Settings.IntervalPeriod),
	)
	throttled := pipeline.Throttle(src, env.Settings.IntervalPeriod)
	return pipeline.Subscribe(ctx, throttled, subscriber(env.Out, func(s string) string { return s }, nil))
}
