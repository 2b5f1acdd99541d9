package samples

import (
	"context"
	"fmt"

	"github.com/kbukum/fluxkit/model"
	"github.com/kbukum/fluxkit/pipeline"
)

func johnDoe() *pipeline.Pipeline[*model.User] {
	return pipeline.FromCallable(func(context.Context) (*model.User, error) {
		return model.NewUser("John", "Doe"), nil
	})
}

func johnDoeComments() *pipeline.Pipeline[*model.Comment] {
	return pipeline.FromCallable(func(context.Context) (*model.Comment, error) {
		return model.NewComment(
			"This is an example comment",
			"It shows the merge of two fluxes",
			"Using fromCallable to create a user and the comment",
		), nil
	})
}

func zipMergeSample(ctx context.Context, env Env) error {
	zipped := pipeline.Zip(johnDoe(), johnDoeComments(), model.NewUserComments)
	if err := pipeline.Subscribe(ctx, zipped, pipeline.Subscriber[*model.UserComments]{
		OnNext:  func(uc *model.UserComments) { env.Out.Element(uc.String()) },
		OnError: env.Out.Fault,
	}); err != nil {
		return err
	}

	tuples := pipeline.Map(pipeline.ZipTuple(johnDoe(), johnDoeComments()),
		func(_ context.Context, t pipeline.Tuple2[*model.User, *model.Comment]) (*model.UserComments, error) {
			return model.NewUserComments(t.T1, t.T2), nil
		})
	return pipeline.Subscribe(ctx, tuples, pipeline.Subscriber[*model.UserComments]{
		OnNext:  func(uc *model.UserComments) { env.Out.Element("Tuple --> " + uc.String()) },
		OnError: env.Out.Fault,
	})
}

func flatMapMergeSample(ctx context.Context, env Env) error {
	comments := johnDoeComments()
	merged := pipeline.FlatMap(johnDoe(), func(_ context.Context, u *model.User) (*pipeline.Pipeline[*model.UserComments], error) {
		return pipeline.Map(comments, func(_ context.Context, c *model.Comment) (*model.UserComments, error) {
			return model.NewUserComments(u, c), nil
		}), nil
	})
	return pipeline.Subscribe(ctx, merged, pipeline.Subscriber[*model.UserComments]{
		OnNext:  func(uc *model.UserComments) { env.Out.Element(uc.String()) },
		OnError: env.Out.Fault,
	})
}

func postsSample(ctx context.Context, env Env) error {
	posts := []*model.Post{
		model.NewPost("Reactive streams are lazy", "Nothing happens until you subscribe"),
		model.NewPost("flatMap flattens inner sequences", "concat keeps them in order", "reduce folds them"),
	}

	lines := make([]*pipeline.Pipeline[string], len(posts))
	for i, p := range posts {
		lines[i] = pipeline.FlatMap(pipeline.Just(p), func(_ context.Context, p *model.Post) (*pipeline.Pipeline[string], error) {
			return pipeline.FromSlice(p.Comments), nil
		})
	}

	all := pipeline.Tap(pipeline.Concat(lines...), func(_ context.Context, c string) error {
		env.Out.Element("comment --> " + c)
		return nil
	})
	count := pipeline.Reduce(all, 0, func(n int, _ string) int { return n + 1 })

	return pipeline.Subscribe(ctx, count, pipeline.Subscriber[int]{
		OnNext:  func(n int) { env.Out.Log(fmt.Sprintf("Total comments --> %d", n)) },
		OnError: env.Out.Fault,
	})
}
