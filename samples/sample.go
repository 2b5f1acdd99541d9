// Package samples is the catalogue of runnable pipeline demos and the
// Runner that executes them with logging, tracing and metrics.
package samples

import (
	"context"
	"strings"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/model"
	"github.com/kbukum/fluxkit/pipeline"
)

// Env is what a sample gets to run with.
type Env struct {
	Settings Settings
	Out      *Recorder
}

// Sample is one runnable demo.
type Sample struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env Env) error
}

var catalogue = []Sample{
	{"iterator", "map, filter and doOnNext over parsed names, with a completion callback", iteratorSample},
	{"flatmap", "flatMap each user to one or zero elements", flatMapSample},
	{"to-string", "map users to strings and keep those containing PAUL", toStringSample},
	{"collect-list", "collect all users into a single list element", collectListSample},
	{"zip-merge", "zip a user with its comments, with a combinator and as a tuple", zipMergeSample},
	{"flatmap-merge", "flatMap a user into its comments", flatMapMergeSample},
	{"zip-ranges", "zip a doubled sequence with a range", zipRangesSample},
	{"interval", "pace a range with an interval and block on the last element", intervalSample},
	{"delay", "delay every element of a range and block on the last element", delaySample},
	{"throttle", "a burst collapses to its first element inside the throttle window", throttleSample},
	{"parallel", "uppercase the team on a pool of workers, in completion order", parallelSample},
	{"fan-out", "derive two views of each user concurrently and log each view", fanOutSample},
	{"merge-paced", "merge two concurrently produced sequences and pace the result", mergePacedSample},
	{"posts", "flatten the comments of two posts and count them", postsSample},
	{"null-fault", "an absent element faults the sequence and skips completion", nullFaultSample},
}

// All returns every sample in catalogue order.
func All() []Sample {
	return append([]Sample(nil), catalogue...)
}

// Names returns the sample names in catalogue order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, s := range catalogue {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a sample by name. Unknown names are NOT_FOUND.
func Lookup(name string) (Sample, error) {
	for _, s := range catalogue {
		if s.Name == name {
			return s, nil
		}
	}
	return Sample{}, errors.NotFound("sample", name)
}

var userNames = []string{"John Rambo", "Mary Popins", "Paul Montana", "Sofia Vergara"}

// newTeam returns fresh records on every call; pipelines mutate them.
func newTeam() []*model.User {
	return []*model.User{
		model.NewUser("John", "Rambo"),
		model.NewUser("Mary", "Popins"),
		model.NewUser("Paul", "Montana"),
		model.NewUser("Paul", "Gasol"),
		model.NewUser("Sofia", "Vergara"),
	}
}

func lowercaseName(_ context.Context, u *model.User) (*model.User, error) {
	u.SetName(strings.ToLower(u.Name))
	return u, nil
}

// subscriber wires the three channels to the recorder the way every
// collection sample reports: "subscribe method --> <value>" per element and
// the fault message on error.
func subscriber[T any](out *Recorder, render func(T) string, onComplete func()) pipeline.Subscriber[T] {
	return pipeline.Subscriber[T]{
		OnNext:     func(v T) { out.Element("subscribe method --> " + render(v)) },
		OnError:    out.Fault,
		OnComplete: onComplete,
	}
}

// blockLast drains p on the calling goroutine and reports a fault the way
// Subscribe would.
func blockLast[T any](ctx context.Context, p *pipeline.Pipeline[T], out *Recorder) error {
	_, _, err := pipeline.BlockLast(ctx, p)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil && !errors.IsAppError(err) {
		err = errors.Canceled(err)
	}
	out.Fault(err)
	return err
}
