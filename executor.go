package async

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// An Executor decides where and when a closure submitted to it runs.
// Executors never refuse to run a closure; a failure in the underlying
// dispatch mechanism (e.g. a panicking trampoline) is fatal to the program,
// not to the Task that submitted the closure.
//
// The zero Executor is [Immediate].
type Executor struct {
	kind       executorKind
	queue      QueueHandle
	opQueue    OperationQueueHandle
	trampoline func(func())
}

type executorKind uint8

const (
	kindImmediate executorKind = iota
	kindDefault
	kindMainThread
	kindQueue
	kindOperationQueue
	kindClosure
)

var (
	// Immediate runs its closure inline, synchronously, on the calling
	// goroutine. Execute returns only after the closure has returned.
	Immediate = Executor{kind: kindImmediate}

	// Default runs its closure inline as long as the calling goroutine's
	// recursion depth through Default's Execute is below a threshold (see
	// [SetDefaultRecursionLimit]), and otherwise dispatches it to a bounded
	// background goroutine pool (see [SetBackgroundPoolLimit]). This lets
	// deep synchronous continuation chains collapse without risking a
	// stack overflow, while still bounding worst-case concurrency.
	Default = Executor{kind: kindDefault}

	// MainThread runs its closure inline if the calling goroutine is
	// already the designated main goroutine (see [SetMainThreadAdapter]),
	// and otherwise schedules it to run there asynchronously.
	MainThread = Executor{kind: kindMainThread}
)

// QueueHandle is the platform adapter behind an [OnQueue] executor: an
// opaque handle to a serial or concurrent queue that can run a closure
// asynchronously. Dispatch must return before the closure runs.
type QueueHandle interface {
	Dispatch(closure func())
}

// OperationQueueHandle is the platform adapter behind an
// [OnOperationQueue] executor: an opaque handle to an operation queue that
// wraps a closure as an operation and enqueues it. Enqueue must return
// before the closure runs.
type OperationQueueHandle interface {
	Enqueue(closure func())
}

// OnQueue returns an Executor that dispatches asynchronously onto q.
func OnQueue(q QueueHandle) Executor {
	if q == nil {
		panic("async: OnQueue: nil QueueHandle")
	}
	return Executor{kind: kindQueue, queue: q}
}

// OnOperationQueue returns an Executor that wraps its closure as an
// operation and adds it to q.
func OnOperationQueue(q OperationQueueHandle) Executor {
	if q == nil {
		panic("async: OnOperationQueue: nil OperationQueueHandle")
	}
	return Executor{kind: kindOperationQueue, opQueue: q}
}

// OnClosure returns an Executor that delegates entirely to trampoline:
// trampoline decides how and when to invoke the closure it is given.
func OnClosure(trampoline func(closure func())) Executor {
	if trampoline == nil {
		panic("async: OnClosure: nil trampoline")
	}
	return Executor{kind: kindClosure, trampoline: trampoline}
}

// Execute arranges for closure to be invoked exactly once, per the
// receiver's variant-specific semantics.
func (e Executor) Execute(closure func()) {
	switch e.kind {
	case kindImmediate:
		closure()
	case kindDefault:
		limit := int(defaultRecursionLimit.Load())
		if defaultGuard.enter(limit) {
			defer defaultGuard.leave()
			closure()
			return
		}
		dispatchBackground(closure)
	case kindMainThread:
		if isOnMainThread() {
			closure()
			return
		}
		dispatchMainThread(closure)
	case kindQueue:
		e.queue.Dispatch(closure)
	case kindOperationQueue:
		e.opQueue.Enqueue(closure)
	case kindClosure:
		e.trampoline(closure)
	default:
		panic("async: Executor: unrecognized kind")
	}
}

// Description returns a short, human-readable name for the Executor's
// variant, suitable for logging by the embedding application.
func (e Executor) Description() string {
	switch e.kind {
	case kindImmediate:
		return "Immediate"
	case kindDefault:
		return "Default"
	case kindMainThread:
		return "MainThread"
	case kindQueue:
		return "Queue"
	case kindOperationQueue:
		return "OperationQueue"
	case kindClosure:
		return "Closure"
	default:
		return "Executor(?)"
	}
}

// DebugDescription returns a more detailed description than Description,
// including the identity of the underlying handle or trampoline where
// applicable. There is no stability contract on either description's text.
func (e Executor) DebugDescription() string {
	switch e.kind {
	case kindQueue:
		return fmt.Sprintf("Queue(%v)", e.queue)
	case kindOperationQueue:
		return fmt.Sprintf("OperationQueue(%v)", e.opQueue)
	case kindClosure:
		return fmt.Sprintf("Closure(%p)", e.trampoline)
	default:
		return e.Description()
	}
}

func (e Executor) String() string { return e.Description() }

// defaultRecursionLimit bounds the Default executor's per-goroutine inline
// recursion depth.
var defaultRecursionLimit atomic.Int64

// SetDefaultRecursionLimit changes the recursion threshold used by
// [Default]. Panics if n is negative.
func SetDefaultRecursionLimit(n int) {
	if n < 0 {
		panic("async: SetDefaultRecursionLimit: negative limit")
	}
	defaultRecursionLimit.Store(int64(n))
}

var backgroundPool atomic.Pointer[semaphore]

// SetBackgroundPoolLimit bounds the number of closures the [Default]
// executor will run concurrently on background goroutines once the
// recursion threshold is exceeded. A non-positive n means unbounded.
func SetBackgroundPoolLimit(n int64) {
	backgroundPool.Store(newSemaphore(n))
}

func init() {
	defaultRecursionLimit.Store(20)
	backgroundPool.Store(newSemaphore(4096))
}

func dispatchBackground(closure func()) {
	pool := backgroundPool.Load()
	go func() {
		pool.acquire(1)
		defer pool.release(1)
		closure()
	}()
}

// MainThreadAdapter lets a host application (most commonly one embedding a
// GUI toolkit's run loop) tell this package which goroutine plays the role
// of "the main thread" and how to schedule a closure onto it.
type MainThreadAdapter interface {
	// IsMainThread reports whether the calling goroutine is the main
	// thread.
	IsMainThread() bool
	// Dispatch schedules closure to run on the main thread asynchronously.
	Dispatch(closure func())
}

var (
	mainThreadMu      sync.Mutex
	mainThreadAdapter MainThreadAdapter
	mainThreadQueue   []func()
)

// SetMainThreadAdapter installs a, overriding the default notion of "main
// thread" (the goroutine that ran this package's init). Passing nil
// restores the default.
func SetMainThreadAdapter(a MainThreadAdapter) {
	mainThreadMu.Lock()
	mainThreadAdapter = a
	mainThreadMu.Unlock()
}

func isOnMainThread() bool {
	mainThreadMu.Lock()
	a := mainThreadAdapter
	mainThreadMu.Unlock()

	if a != nil {
		return a.IsMainThread()
	}
	return isMainGoroutine()
}

func dispatchMainThread(closure func()) {
	mainThreadMu.Lock()
	a := mainThreadAdapter
	mainThreadMu.Unlock()

	if a != nil {
		a.Dispatch(closure)
		return
	}

	mainThreadMu.Lock()
	mainThreadQueue = append(mainThreadQueue, closure)
	mainThreadMu.Unlock()
}

// DrainMainThreadQueue runs, in registration order, every closure queued
// for [MainThread] so far. It exists for programs with no main-thread run
// loop of their own and no [MainThreadAdapter] installed: call it
// periodically from the actual main goroutine. Programs that install a
// MainThreadAdapter (e.g. one that wraps a GUI toolkit's run loop) do not
// need to call this.
func DrainMainThreadQueue() {
	mainThreadMu.Lock()
	pending := mainThreadQueue
	mainThreadQueue = nil
	mainThreadMu.Unlock()

	for _, f := range pending {
		f()
	}
}
