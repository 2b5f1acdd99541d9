package samples

import (
	"context"
	"strings"

	"github.com/kbukum/fluxkit/model"
	"github.com/kbukum/fluxkit/pipeline"
)

func iteratorSample(ctx context.Context, env Env) error {
	users := pipeline.Map(pipeline.FromSlice(userNames), func(_ context.Context, full string) (*model.User, error) {
		return model.ParseUser(full, model.UpperName())
	})
	users = pipeline.Filter(users, func(u *model.User) bool {
		return strings.ToLower(u.Name) == "sofia"
	})
	users = pipeline.RequireNonNil(users, "doOnNext")
	users = pipeline.Tap(users, func(_ context.Context, u *model.User) error {
		env.Out.Log("onNext method --> " + u.FullName())
		return nil
	})
	users = pipeline.Map(users, lowercaseName)

	return pipeline.Subscribe(ctx, users, subscriber(env.Out, (*model.User).String, func() {
		env.Out.Log("The observer has finished correctly")
	}))
}

func flatMapSample(ctx context.Context, env Env) error {
	users := pipeline.Map(pipeline.FromSlice(userNames), func(_ context.Context, full string) (*model.User, error) {
		return model.ParseUser(full, model.UpperName(), model.UpperSurname())
	})
	users = pipeline.FlatMap(users, func(_ context.Context, u *model.User) (*pipeline.Pipeline[*model.User], error) {
		if strings.EqualFold(u.Name, "sofia") {
			return pipeline.Just(u), nil
		}
		return pipeline.Empty[*model.User](), nil
	})
	users = pipeline.Map(users, lowercaseName)

	return pipeline.Subscribe(ctx, users, subscriber(env.Out, (*model.User).String, nil))
}

func toStringSample(ctx context.Context, env Env) error {
	names := pipeline.Map(pipeline.FromSlice(newTeam()), func(_ context.Context, u *model.User) (string, error) {
		return strings.ToUpper(u.Name) + " " + strings.ToUpper(u.Surname), nil
	})
	names = pipeline.FlatMap(names, func(_ context.Context, name string) (*pipeline.Pipeline[string], error) {
		if strings.Contains(name, "PAUL") {
			return pipeline.Just(name), nil
		}
		return pipeline.Empty[string](), nil
	})
	names = pipeline.Map(names, func(_ context.Context, name string) (string, error) {
		return strings.ToLower(name), nil
	})

	return pipeline.Subscribe(ctx, names, subscriber(env.Out, func(s string) string { return s }, nil))
}

func collectListSample(ctx context.Context, env Env) error {
	list := pipeline.CollectList(pipeline.FromSlice(newTeam()))
	return pipeline.Subscribe(ctx, list, pipeline.Subscriber[[]*model.User]{
		OnNext: func(users []*model.User) {
			for _, u := range users {
				env.Out.Element("User: " + u.String())
			}
		},
		OnError: env.Out.Fault,
	})
}

func nullFaultSample(ctx context.Context, env Env) error {
	users := pipeline.Just[*model.User](model.NewUser("John", "Rambo"), nil, model.NewUser("Sofia", "Vergara"))
	users = pipeline.RequireNonNil(users, "doOnNext")
	users = pipeline.Tap(users, func(_ context.Context, u *model.User) error {
		env.Out.Log("onNext method --> " + u.FullName())
		return nil
	})

	return pipeline.Subscribe(ctx, users, subscriber(env.Out, (*model.User).String, func() {
		env.Out.Log("The observer has finished correctly")
	}))
}
