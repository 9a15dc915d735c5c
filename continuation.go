package async

// Go methods cannot introduce a type parameter beyond their receiver's, so
// the continuation family is a set of free functions rather than methods on
// Task[T].

// ContinueWith attaches a continuation that always runs f once t reaches a
// terminal state, regardless of what that state is. f runs on executor
// (Default if omitted). The returned Task is never the same handle as one f
// itself might have produced; wrapping is always present.
func ContinueWith[T, U any](t Task[T], f func(Task[T]) U, executor ...Executor) Task[U] {
	ex := pickExecutor(executor)
	s := NewTaskSource[U]()

	t.addContinuation(ex, func() {
		var result U
		panicked := callGuarded(func() { result = f(t) })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		s.TrySetResult(result)
	})

	return s.Task()
}

// ContinueWithTask is ContinueWith for a continuation that itself returns a
// Task: the inner Task's terminal state is forwarded into the result once
// the inner Task completes, rather than the result completing immediately.
func ContinueWithTask[T, U any](t Task[T], f func(Task[T]) Task[U], executor ...Executor) Task[U] {
	ex := pickExecutor(executor)
	s := NewTaskSource[U]()

	t.addContinuation(ex, func() {
		var inner Task[U]
		panicked := callGuarded(func() { inner = f(t) })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		forwardTask(inner, s)
	})

	return s.Task()
}

// ContinueOnSuccessWith is ContinueWith restricted to the antecedent's
// Success case: f only runs when t succeeded, and is handed the unwrapped
// value directly rather than the Task. If t failed or was cancelled, the
// result carries the same failure or cancellation without invoking f.
func ContinueOnSuccessWith[T, U any](t Task[T], f func(T) U, executor ...Executor) Task[U] {
	ex := pickExecutor(executor)
	s := NewTaskSource[U]()

	t.addContinuation(ex, func() {
		state, value, err := t.core.snapshot()
		switch state {
		case Failure:
			s.TrySetError(err)
			return
		case Cancelled:
			s.TryCancel()
			return
		}

		var result U
		panicked := callGuarded(func() { result = f(value) })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		s.TrySetResult(result)
	})

	return s.Task()
}

// ContinueOnSuccessWithTask is ContinueOnSuccessWith for a continuation that
// itself returns a Task.
func ContinueOnSuccessWithTask[T, U any](t Task[T], f func(T) Task[U], executor ...Executor) Task[U] {
	ex := pickExecutor(executor)
	s := NewTaskSource[U]()

	t.addContinuation(ex, func() {
		state, value, err := t.core.snapshot()
		switch state {
		case Failure:
			s.TrySetError(err)
			return
		case Cancelled:
			s.TryCancel()
			return
		}

		var inner Task[U]
		panicked := callGuarded(func() { inner = f(value) })
		if panicked != nil {
			s.TrySetError(panicked)
			return
		}
		forwardTask(inner, s)
	})

	return s.Task()
}
