package async

import "sync"

// Void stands in for "no meaningful result", used by combinators and
// [WithDelay] whose only useful output is "this finished".
type Void struct{}

// WhenAll returns a Task that completes once every task in tasks has
// reached a terminal state. Empty input completes immediately with Success.
// Otherwise the aggregate outcome is decided in priority order once every
// input is terminal:
//
//  1. one or more inputs failed → Failure with an *[AggregateError]
//     collecting every failure, in the order they completed;
//  2. else one or more inputs were cancelled → Cancelled;
//  3. else → Success.
func WhenAll[T any](tasks ...Task[T]) Task[Void] {
	if len(tasks) == 0 {
		return NewTask(Void{})
	}

	s := NewTaskSource[Void]()
	count := newCountdown(len(tasks))

	var (
		mu           sync.Mutex
		errs         []error
		anyCancelled bool
	)

	for _, t := range tasks {
		t := t
		t.addContinuation(Immediate, func() {
			state, _, err := t.core.snapshot()
			switch state {
			case Failure:
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			case Cancelled:
				mu.Lock()
				anyCancelled = true
				mu.Unlock()
			}

			if count.dec() {
				completeWhenAll(s, Void{}, errs, anyCancelled)
			}
		})
	}

	return s.Task()
}

// WhenAllResult is WhenAll for tasks that produce a value: on aggregate
// Success, the result is every input's value, in input order (not
// completion order).
func WhenAllResult[T any](tasks ...Task[T]) Task[[]T] {
	if len(tasks) == 0 {
		return NewTask([]T{})
	}

	s := NewTaskSource[[]T]()
	count := newCountdown(len(tasks))
	results := make([]T, len(tasks))

	var (
		mu           sync.Mutex
		errs         []error
		anyCancelled bool
	)

	for i, t := range tasks {
		i, t := i, t
		t.addContinuation(Immediate, func() {
			state, value, err := t.core.snapshot()
			switch state {
			case Success:
				results[i] = value
			case Failure:
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			case Cancelled:
				mu.Lock()
				anyCancelled = true
				mu.Unlock()
			}

			if count.dec() {
				completeWhenAll(s, results, errs, anyCancelled)
			}
		})
	}

	return s.Task()
}

// completeWhenAll runs once, from whichever input's continuation was the
// last to call countdown.dec. By then every other input's write to errs,
// anyCancelled, and result has already happened-before this call,
// transitively, through the countdown's own mutex.
func completeWhenAll[T any](s *TaskSource[T], value T, errs []error, anyCancelled bool) {
	switch {
	case len(errs) > 0:
		s.TrySetError(&AggregateError{Errors: errs})
	case anyCancelled:
		s.TryCancel()
	default:
		s.TrySetResult(value)
	}
}

// WhenAny returns a Task that completes with whichever input reaches a
// terminal state first; the rest are left to run to completion but their
// outcomes are ignored. Ties among concurrently completing inputs are
// broken by whichever's continuation the executor happens to run first.
// Calling WhenAny with no tasks is a programming error.
func WhenAny[T any](tasks ...Task[T]) Task[Task[T]] {
	if len(tasks) == 0 {
		panic(emptyWhenAnyError{})
	}

	s := NewTaskSource[Task[T]]()
	var once sync.Once

	for _, t := range tasks {
		t := t
		t.addContinuation(Immediate, func() {
			once.Do(func() {
				s.TrySetResult(t)
			})
		})
	}

	return s.Task()
}
