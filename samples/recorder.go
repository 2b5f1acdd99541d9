package samples

import (
	"sync"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/logger"
)

// Recorder is where a sample reports what its subscriber saw. Every line is
// logged and kept, so a run can be inspected after the fact.
type Recorder struct {
	log       *logger.Logger
	onElement func()

	mu       sync.Mutex
	lines    []string
	elements int
}

// NewRecorder creates a Recorder logging through log. onElement, if not
// nil, is called once per Element line.
func NewRecorder(log *logger.Logger, onElement func()) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{log: log, onElement: onElement}
}

// Element reports a value delivered to the subscriber.
func (r *Recorder) Element(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.elements++
	r.mu.Unlock()

	r.log.Info(line)
	if r.onElement != nil {
		r.onElement()
	}
}

// Log reports any other line: side effects of a stage, completion, totals.
func (r *Recorder) Log(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()

	r.log.Info(line)
}

// Fault reports the fault delivered to the subscriber. The recorded line is
// the human message, as an error callback would print it.
func (r *Recorder) Fault(err error) {
	msg := errors.Message(err)
	r.mu.Lock()
	r.lines = append(r.lines, msg)
	r.mu.Unlock()

	fields := logger.Fields(logger.FieldError, err.Error())
	if appErr, ok := errors.AsAppError(err); ok {
		fields["code"] = string(appErr.Code)
	}
	r.log.Error(msg, fields)
}

// Lines returns a copy of everything recorded so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Elements returns the number of Element lines.
func (r *Recorder) Elements() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elements
}
