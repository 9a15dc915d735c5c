package async

import (
	"fmt"
	"strings"
)

// AlreadyCompletedError is the panic value raised by [TaskSource.SetResult],
// [TaskSource.SetError], and [TaskSource.Cancel] when the TaskCore has
// already left the Pending state. Use the Try* variants on TaskSource to
// complete a TaskCore without risking this panic.
type AlreadyCompletedError struct {
	// Attempted is the state the caller tried to transition to.
	Attempted TaskCompletionState
	// Actual is the state the TaskCore was already in.
	Actual TaskCompletionState
}

func (e *AlreadyCompletedError) Error() string {
	return "async: already completed: cannot set " + e.Attempted.String() +
		", already " + e.Actual.String()
}

// AggregateError is produced by [WhenAll] and [WhenAllResult] when one or
// more input Tasks failed. Errors is ordered by the order in which the
// inputs actually reached a terminal state, not by their position in the
// input sequence.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return "async: 1 task failed: " + e.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "async: %d tasks failed:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n(%d/%d) %v", i+1, len(e.Errors), err)
	}
	return b.String()
}

// Unwrap exposes the underlying errors for errors.Is/errors.As traversal,
// following the multi-error Unwrap() []error convention.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// emptyWhenAnyError is the panic value raised by [WhenAny] when given no
// input Tasks.
type emptyWhenAnyError struct{}

func (emptyWhenAnyError) Error() string {
	return "async: WhenAny called with no tasks"
}

// resultNotAvailableError is the panic value raised by [Task.Result] when
// the Task is not in the Success state, and by [Task.Error] when the Task
// is not in the Failure state.
type resultNotAvailableError struct {
	want, got TaskCompletionState
}

func (e resultNotAvailableError) Error() string {
	return "async: cannot read result/error: task is " + e.got.String() +
		", not " + e.want.String()
}
