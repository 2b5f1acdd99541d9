// Package pipeline provides composable, pull-based stream operators in the
// style of a reactive Flux.
//
// Pipelines are lazy: no work happens until a terminal (Subscribe,
// BlockLast, Collect, Drain, ForEach) pulls values. Each stage pulls from
// the previous one on demand, so source order is preserved through every
// synchronous operator and nothing is produced that nobody asked for.
//
// # Sources
//
//   - FromSlice, Just, Range, Empty, Fail: finite in-memory sequences
//   - FromCallable: one lazily computed value
//   - Interval: infinite ticks 0, 1, 2, ... one per period
//   - From, FromFunc: adapt an existing Iterator
//
// # Operators
//
// Synchronous (run on the pulling goroutine):
//
//   - Map, Filter, Tap, Take, RequireNonNil
//   - FlatMap: expand each value into an inner pipeline, drained in order
//   - Zip, ZipTuple: pair two pipelines by position, stop at the shorter one
//   - Reduce, CollectList, Concat
//   - Delay, Limit: pace emission with timers
//
// Concurrent (own goroutines, stopped on Close or context cancellation):
//
//   - Buffer: decouple producer and consumer with a buffered channel
//   - Merge: interleave several pipelines as values arrive (order NOT preserved)
//
// # Subscribing
//
//	names := pipeline.Just("John Rambo", "Sofia Vergara")
//	users := pipeline.Map(names, parseUser)
//	sofia := pipeline.Filter(users, func(u *model.User) bool {
//	    return strings.EqualFold(u.Name, "sofia")
//	})
//	err := pipeline.Subscribe(ctx, sofia, pipeline.Subscriber[*model.User]{
//	    OnNext:     func(u *model.User) { log.Info("subscribe method --> " + u.String()) },
//	    OnError:    func(err error) { log.Error(err.Error()) },
//	    OnComplete: func() { log.Info("done") },
//	})
package pipeline
