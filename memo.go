package async

import "sync"

// Memoize wraps factory so that it runs at most once: the first caller
// invokes factory and every caller, including the first, observes the same
// Task[T]. Later calls never re-invoke factory, even if the Task it
// produced failed or was cancelled. Once factory has run, the result never
// goes stale, since a Task never un-completes once settled.
func Memoize[T any](factory func() Task[T]) func() Task[T] {
	var (
		once sync.Once
		task Task[T]
	)
	return func() Task[T] {
		once.Do(func() {
			task = factory()
		})
		return task
	}
}
