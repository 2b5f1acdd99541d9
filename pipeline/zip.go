package pipeline

import (
	"context"
	"fmt"
)

// Tuple2 pairs the values zipped from two pipelines.
type Tuple2[A, B any] struct {
	T1 A
	T2 B
}

func (t Tuple2[A, B]) String() string {
	return fmt.Sprintf("[%v,%v]", t.T1, t.T2)
}

// Zip combines two pipelines pairwise by position: the i-th output is
// fn(a_i, b_i). It completes as soon as either side completes, so the output
// is as long as the shorter input. A value pulled from a before b ran out is
// discarded.
func Zip[A, B, O any](a *Pipeline[A], b *Pipeline[B], fn func(A, B) O) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &zipIter[A, B, O]{left: a.create(ctx), right: b.create(ctx), fn: fn}
		},
	}
}

// ZipTuple zips two pipelines into Tuple2 values.
func ZipTuple[A, B any](a *Pipeline[A], b *Pipeline[B]) *Pipeline[Tuple2[A, B]] {
	return Zip(a, b, func(x A, y B) Tuple2[A, B] {
		return Tuple2[A, B]{T1: x, T2: y}
	})
}

type zipIter[A, B, O any] struct {
	left  Iterator[A]
	right Iterator[B]
	fn    func(A, B) O
	done  bool
}

func (it *zipIter[A, B, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if it.done {
		return zero, false, nil
	}
	a, ok, err := it.left.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.done = true
		return zero, false, nil
	}
	b, ok, err := it.right.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.done = true
		return zero, false, nil
	}
	return it.fn(a, b), true, nil
}

func (it *zipIter[A, B, O]) Close() error {
	lerr := it.left.Close()
	rerr := it.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
