// Package async is a library for asynchronous task composition.
//
// A [Task] is an immutable handle to the eventual outcome of a computation:
// a value, an error, or a cancellation. A [TaskSource] is the paired
// write-side handle that completes a Task exactly once. Consumers attach
// continuations to a Task with [ContinueWith] and its variants; each
// continuation runs on an [Executor] chosen at attachment time and produces
// a new Task whose completion is derived from the continuation's return
// value.
//
// # Use Case #1: Producing a Task
//
// A producer obtains a TaskSource, does some work (possibly on another
// goroutine), and calls SetResult, SetError, or Cancel exactly once. The
// paired Task is handed out to any number of consumers before or after that
// happens; it behaves identically either way.
//
//	source := async.NewTaskSource[int]()
//	go func() {
//		source.SetResult(computeSomething())
//	}()
//	task := source.Task()
//
// # Use Case #2: Chaining Work
//
// ContinueWith always runs its closure, regardless of the antecedent's
// terminal state, and is handed the antecedent Task so it can inspect it.
// ContinueOnSuccessWith only runs when the antecedent succeeded, and
// otherwise forwards the antecedent's failure or cancellation without
// invoking the closure.
//
//	result := async.ContinueOnSuccessWith(task, func(v int) string {
//		return fmt.Sprint(v)
//	})
//
// A closure may also return a Task instead of a plain value (use
// [ContinueWithTask] / [ContinueOnSuccessWithTask]), in which case the
// returned Task's terminal state is forwarded into the outer Task once it
// completes, rather than the outer Task completing immediately.
//
// # Use Case #3: Joining Many Tasks
//
// [WhenAll] and [WhenAllResult] complete only once every input Task has
// reached a terminal state, preferring to surface faults over cancellation
// when both occurred among the inputs. [WhenAny] completes as soon as the
// first input does, ignoring the rest.
//
// # Where Continuations Run
//
// An [Executor] decides where and when a continuation closure runs:
// inline on the calling goroutine ([Immediate]), inline up to a recursion
// depth and then on a background goroutine ([Default]), on the goroutine
// designated as the main goroutine ([MainThread]), or on a caller-supplied
// queue, operation queue, or trampoline function. Executors never refuse to
// run a closure; a failure in the underlying dispatch mechanism is fatal to
// the program, not to the Task.
//
// # Blocking
//
// [Task.WaitUntilCompleted] is the only operation in this package that
// blocks the calling goroutine. Every other operation returns promptly; the
// work it schedules runs according to the chosen Executor.
package async
