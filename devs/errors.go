package devs

import "fmt"

// InvalidPortHostError reports that a value was posted to a port not owned
// by the posting model.
type InvalidPortHostError struct {
	Port  string
	Host  string
	Actor string
}

func (e *InvalidPortHostError) Error() string {
	return fmt.Sprintf("devs: port %q belongs to %q, not %q", e.Port, e.Host, e.Actor)
}

// NoSuchPortError reports that a model has no port of the given name.
type NoSuchPortError struct {
	Model string
	Port  string
}

func (e *NoSuchPortError) Error() string {
	return fmt.Sprintf("devs: model %q has no port %q", e.Model, e.Port)
}

// InvalidDurationError reports that a model's time_advance result cannot be
// fixed at the model's declared precision without overflowing.
type InvalidDurationError struct {
	Model     string
	Precision Scale
	Returned  Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("devs: model %q returned %s, not representable at precision %s",
		e.Model, e.Returned, e.Precision)
}

// InvalidProcessorError reports a rejected state-initialization request:
// Simulator and Coordinator return it when InitializeProcessor is called on
// a processor that has already been initialized. Which processor issued the
// request is not tracked.
type InvalidProcessorError struct {
	Model string
}

func (e *InvalidProcessorError) Error() string {
	return fmt.Sprintf("devs: state-init request for %q rejected: processor already initialized", e.Model)
}

// BadSynchronisationError reports the internal invariant failure of a
// coordinator boundary where time != planned. Its presence always indicates
// a scheduler bug rather than a user model bug.
type BadSynchronisationError struct {
	Model   string
	Time    TimePoint
	Planned Duration
}

func (e *BadSynchronisationError) Error() string {
	return fmt.Sprintf("devs: synchronisation invariant violated for %q: time=%s planned=%s",
		e.Model, e.Time, e.Planned)
}

// PlanningError reports that the event set could not represent a planned
// duration at the precision an item requires.
type PlanningError struct {
	Item      string
	Precision Scale
	Requested Duration
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("devs: cannot plan %q at precision %s for duration %s",
		e.Item, e.Precision, e.Requested)
}

// UnobservablePortError reports an attempt to attach an observer to a port
// whose class is not externally visible: input ports of atomic models, and
// any port of a coupled model.
type UnobservablePortError struct {
	Port string
}

func (e *UnobservablePortError) Error() string {
	return fmt.Sprintf("devs: port %q is not externally observable", e.Port)
}
