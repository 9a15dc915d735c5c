package async

import "sync"

// taskCore is the shared, single-assignment backing state of a Task/TaskSource
// pair: a lock-protected terminal state plus the ordered list of
// continuations registered while still Pending.
type taskCore[T any] struct {
	mu            sync.Mutex
	state         TaskCompletionState
	result        T
	err           error
	continuations []continuationEntry
	done          chan struct{}
}

type continuationEntry struct {
	executor Executor
	closure  func()
}

func newTaskCore[T any]() *taskCore[T] {
	return &taskCore[T]{done: make(chan struct{})}
}

// complete installs the terminal state, drains the continuation list to a
// local, signals waiters, releases the lock, then runs the drained
// continuations outside the lock so that a re-entrant continuation (one that
// completes another core observed by a continuation on this one) cannot
// deadlock against it.
func (c *taskCore[T]) complete(state TaskCompletionState, result T, err error) bool {
	c.mu.Lock()
	if c.state != Pending {
		c.mu.Unlock()
		return false
	}

	c.state = state
	c.result = result
	c.err = err
	drained := c.continuations
	c.continuations = nil
	close(c.done)
	c.mu.Unlock()

	for _, entry := range drained {
		entry.executor.Execute(entry.closure)
	}
	return true
}

// addContinuation appends to the pending list if still Pending, otherwise
// runs closure on executor right away. Either branch only ever runs closure
// once.
func (c *taskCore[T]) addContinuation(executor Executor, closure func()) {
	c.mu.Lock()
	if c.state == Pending {
		c.continuations = append(c.continuations, continuationEntry{executor, closure})
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	executor.Execute(closure)
}

func (c *taskCore[T]) currentState() TaskCompletionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *taskCore[T]) snapshot() (TaskCompletionState, T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.result, c.err
}

func (c *taskCore[T]) wait() { <-c.done }

// Task is an immutable, read-only handle to the eventual outcome of a
// computation: a value, an error, or a cancellation. The zero Task[T] is not
// valid; obtain one from a [TaskSource], a Task factory, or a
// continuation/combinator.
type Task[T any] struct {
	core *taskCore[T]
}

// Completed reports whether the Task has left the Pending state.
func (t Task[T]) Completed() bool { return t.core.currentState() != Pending }

// Faulted reports whether the Task completed with an error.
func (t Task[T]) Faulted() bool { return t.core.currentState() == Failure }

// Cancelled reports whether the Task was cancelled.
func (t Task[T]) Cancelled() bool { return t.core.currentState() == Cancelled }

// State returns the Task's current TaskCompletionState.
func (t Task[T]) State() TaskCompletionState { return t.core.currentState() }

// Result returns the Task's value. It panics if the Task is not in the
// Success state.
func (t Task[T]) Result() T {
	state, result, _ := t.core.snapshot()
	if state != Success {
		panic(resultNotAvailableError{want: Success, got: state})
	}
	return result
}

// Error returns the Task's error. It panics if the Task is not in the
// Failure state.
func (t Task[T]) Error() error {
	state, _, err := t.core.snapshot()
	if state != Failure {
		panic(resultNotAvailableError{want: Failure, got: state})
	}
	return err
}

// WaitUntilCompleted blocks the calling goroutine until the Task reaches a
// terminal state. It is the only blocking operation in this package. It does
// not consume or return the result; inspect the Task afterward with
// Result/Error/Cancelled.
//
// Calling this on the goroutine that is itself the only path to completing
// the Task deadlocks; the library does not attempt to detect this.
func (t Task[T]) WaitUntilCompleted() { t.core.wait() }

func (t Task[T]) addContinuation(executor Executor, closure func()) {
	t.core.addContinuation(executor, closure)
}

// TaskSource is the exclusive write-side handle to a taskCore: it completes
// its paired [Task] exactly once. A taskCore is reachable from at most one
// TaskSource and any number of Task handles.
type TaskSource[T any] struct {
	core *taskCore[T]
}

// NewTaskSource creates a fresh TaskSource in the Pending state.
func NewTaskSource[T any]() *TaskSource[T] {
	return &TaskSource[T]{core: newTaskCore[T]()}
}

// Task returns the read-side handle paired with s. It may be called any
// number of times and before or after s completes.
func (s *TaskSource[T]) Task() Task[T] { return Task[T]{core: s.core} }

// SetResult transitions the paired Task to Success(v). It panics with
// *[AlreadyCompletedError] if the Task was not Pending.
func (s *TaskSource[T]) SetResult(v T) {
	if !s.TrySetResult(v) {
		panic(&AlreadyCompletedError{Attempted: Success, Actual: s.core.currentState()})
	}
}

// SetError transitions the paired Task to Failure(err). It panics with
// *[AlreadyCompletedError] if the Task was not Pending.
func (s *TaskSource[T]) SetError(err error) {
	if !s.TrySetError(err) {
		panic(&AlreadyCompletedError{Attempted: Failure, Actual: s.core.currentState()})
	}
}

// Cancel transitions the paired Task to Cancelled. It panics with
// *[AlreadyCompletedError] if the Task was not Pending.
func (s *TaskSource[T]) Cancel() {
	if !s.TryCancel() {
		panic(&AlreadyCompletedError{Attempted: Cancelled, Actual: s.core.currentState()})
	}
}

// TrySetResult is SetResult, but reports false instead of panicking if the
// Task was not Pending.
func (s *TaskSource[T]) TrySetResult(v T) bool {
	return s.core.complete(Success, v, nil)
}

// TrySetError is SetError, but reports false instead of panicking if the
// Task was not Pending.
func (s *TaskSource[T]) TrySetError(err error) bool {
	var zero T
	return s.core.complete(Failure, zero, err)
}

// TryCancel is Cancel, but reports false instead of panicking if the Task
// was not Pending.
func (s *TaskSource[T]) TryCancel() bool {
	var zero T
	return s.core.complete(Cancelled, zero, nil)
}

// NewTask returns a Task already completed with Success(value).
func NewTask[T any](value T) Task[T] {
	s := NewTaskSource[T]()
	s.SetResult(value)
	return s.Task()
}

// NewTaskWithError returns a Task already completed with Failure(err).
func NewTaskWithError[T any](err error) Task[T] {
	s := NewTaskSource[T]()
	s.SetError(err)
	return s.Task()
}

// CancelledTask returns a Task already in the Cancelled state.
func CancelledTask[T any]() Task[T] {
	s := NewTaskSource[T]()
	s.Cancel()
	return s.Task()
}

// Execute runs closure on executor (Default if omitted) and returns a Task
// that completes with its return value, or with a captured panic as a
// Failure.
func Execute[T any](closure func() T, executor ...Executor) Task[T] {
	ex := pickExecutor(executor)
	s := NewTaskSource[T]()

	ex.Execute(func() {
		var result T
		panicked := callGuarded(func() { result = closure() })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		s.TrySetResult(result)
	})

	return s.Task()
}

// ExecuteWithTask runs closure on executor (Default if omitted) and forwards
// the Task it returns into the result. A nil Task returned by closure is
// treated as Cancelled, per [ContinueWithTask].
func ExecuteWithTask[T any](closure func() Task[T], executor ...Executor) Task[T] {
	ex := pickExecutor(executor)
	s := NewTaskSource[T]()

	ex.Execute(func() {
		var inner Task[T]
		panicked := callGuarded(func() { inner = closure() })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		forwardTask(inner, s)
	})

	return s.Task()
}

// forwardTask attaches an Immediate continuation to inner that forwards its
// terminal state into s. A nil inner (the zero Task[T]) is treated as
// Cancelled.
func forwardTask[T any](inner Task[T], s *TaskSource[T]) {
	if inner.core == nil {
		s.TryCancel()
		return
	}

	inner.addContinuation(Immediate, func() {
		state, result, err := inner.core.snapshot()
		switch state {
		case Success:
			s.TrySetResult(result)
		case Failure:
			s.TrySetError(err)
		case Cancelled:
			s.TryCancel()
		}
	})
}

func pickExecutor(executor []Executor) Executor {
	if len(executor) > 0 {
		return executor[0]
	}
	return Default
}
