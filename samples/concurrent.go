package samples

import (
	"context"
	"strings"

	"github.com/kbukum/fluxkit/model"
	"github.com/kbukum/fluxkit/pipeline"
)

// parallelSample uppercases the team on Settings.Workers goroutines. Values
// arrive in completion order.
func parallelSample(ctx context.Context, env Env) error {
	upper := pipeline.Parallel(pipeline.FromSlice(newTeam()), env.Settings.Workers,
		func(_ context.Context, u *model.User) (string, error) {
			return strings.ToUpper(u.FullName()), nil
		})
	return pipeline.Subscribe(ctx, upper, subscriber(env.Out, func(s string) string { return s }, func() {
		env.Out.Log("The observer has finished correctly")
	}))
}

// fanOutSample derives two views of every user concurrently and logs each
// view before the pair reaches the subscriber.
func fanOutSample(ctx context.Context, env Env) error {
	views := pipeline.FanOut(pipeline.FromSlice(newTeam()),
		func(_ context.Context, u *model.User) (string, error) {
			return strings.ToUpper(u.FullName()), nil
		},
		func(_ context.Context, u *model.User) (string, error) {
			return initials(u), nil
		},
	)
	views = pipeline.TapEach(views,
		func(_ context.Context, name string) error {
			env.Out.Log("name --> " + name)
			return nil
		},
		func(_ context.Context, in string) error {
			env.Out.Log("initials --> " + in)
			return nil
		},
	)
	return pipeline.Subscribe(ctx, views, subscriber(env.Out, func(v []string) string {
		return strings.Join(v, " / ")
	}, nil))
}

func initials(u *model.User) string {
	var b strings.Builder
	for _, part := range []string{u.Name, u.Surname} {
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]) + ".")
		}
	}
	return b.String()
}
