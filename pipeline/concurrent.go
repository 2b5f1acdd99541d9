package pipeline

import (
	"context"
	"sync"

	"github.com/kbukum/fluxkit/errors"
)

// pump pulls src on the calling goroutine and forwards every value to ch
// until the source ends, a fault occurs, or ctx is done. A panic in an
// upstream stage is forwarded as an INTERNAL fault.
func pump[T any](ctx context.Context, src Iterator[T], ch chan<- result[T]) {
	send := func(r result[T]) bool {
		select {
		case ch <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}
	defer func() {
		if r := recover(); r != nil {
			send(result[T]{err: errors.FromPanic(r)})
		}
	}()
	for {
		val, ok, err := src.Next(ctx)
		if err != nil {
			send(result[T]{err: err})
			return
		}
		if !ok {
			return
		}
		if !send(result[T]{val: val}) {
			return
		}
	}
}

// Buffer runs the upstream stages on their own goroutine and hands values
// over through a channel of the given size. Order is preserved.
func Buffer[T any](p *Pipeline[T], size int) *Pipeline[T] {
	if size <= 0 {
		size = 1
	}
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			bufCtx, cancel := context.WithCancel(ctx)
			source := p.create(bufCtx)
			ch := make(chan result[T], size)
			done := make(chan struct{})

			go func() {
				defer close(done)
				defer close(ch)
				pump(bufCtx, source, ch)
			}()

			return &channelIter[T]{
				ch: ch,
				closer: func() error {
					cancel()
					<-done
					return source.Close()
				},
			}
		},
	}
}

// Merge subscribes to all pipelines at once and emits values as they
// arrive from any of them. Order between sources is NOT preserved; order
// within one source is. The first fault from any source faults the merge.
func Merge[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			mergeCtx, cancel := context.WithCancel(ctx)
			ch := make(chan result[T], len(pipelines))
			iters := make([]Iterator[T], len(pipelines))
			var wg sync.WaitGroup

			for i, p := range pipelines {
				iters[i] = p.create(mergeCtx)
				wg.Add(1)
				go func(iter Iterator[T]) {
					defer wg.Done()
					pump(mergeCtx, iter, ch)
				}(iters[i])
			}

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(ch)
				close(done)
			}()

			return &channelIter[T]{
				ch: ch,
				closer: func() error {
					cancel()
					<-done
					var firstErr error
					for _, iter := range iters {
						if err := iter.Close(); err != nil && firstErr == nil {
							firstErr = err
						}
					}
					return firstErr
				},
			}
		},
	}
}

// Parallel applies fn to each value with up to n workers. Values are
// emitted as workers finish, so order is NOT preserved; use Map for ordered
// processing. The first fault from fn or the source faults the pipeline and
// stops the workers.
func Parallel[I, O any](p *Pipeline[I], n int, fn func(context.Context, I) (O, error)) *Pipeline[O] {
	if n <= 0 {
		n = 1
	}
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			workerCtx, cancel := context.WithCancel(ctx)
			source := p.create(workerCtx)
			in := make(chan I, n)
			out := make(chan result[O], n)

			send := func(r result[O]) bool {
				select {
				case out <- r:
					return true
				case <-workerCtx.Done():
					return false
				}
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer close(in)
				defer func() {
					if r := recover(); r != nil {
						send(result[O]{err: errors.FromPanic(r)})
					}
				}()
				for {
					val, ok, err := source.Next(workerCtx)
					if err != nil {
						send(result[O]{err: err})
						return
					}
					if !ok {
						return
					}
					select {
					case in <- val:
					case <-workerCtx.Done():
						return
					}
				}
			}()

			for range n {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer func() {
						if r := recover(); r != nil {
							send(result[O]{err: errors.FromPanic(r)})
						}
					}()
					for val := range in {
						o, err := fn(workerCtx, val)
						if err != nil {
							send(result[O]{err: err})
							return
						}
						if !send(result[O]{val: o}) {
							return
						}
					}
				}()
			}

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(out)
				close(done)
			}()

			return &channelIter[O]{
				ch: out,
				closer: func() error {
					cancel()
					<-done
					return source.Close()
				},
			}
		},
	}
}
