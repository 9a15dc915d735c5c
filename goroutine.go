package async

import (
	"runtime"
	"strconv"
	"sync"
)

// goroutineID returns an identifier for the calling goroutine, parsed out of
// the header line of its own stack trace. It is not guaranteed stable by the
// runtime, but it is stable for the life of a goroutine, which is all the
// [Default] executor's recursion guard and [isMainGoroutine] need.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	// The header line looks like "goroutine 123 [running]:".
	const prefix = "goroutine "
	if len(b) < len(prefix) {
		return -1
	}
	b = b[len(prefix):]

	i := 0
	for i < len(b) && b[i] != ' ' {
		i++
	}

	id, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// mainGoroutineID is captured during package initialization, which always
// runs on the goroutine that will go on to call main (or, in a test binary,
// the goroutine running the test harness). This is the library's notion of
// "the main thread" unless overridden by [SetMainThreadAdapter].
var mainGoroutineID = goroutineID()

// isMainGoroutine reports whether the calling goroutine is the one that
// initialized the program, absent any overriding [MainThreadAdapter].
func isMainGoroutine() bool {
	return goroutineID() == mainGoroutineID
}

// recursionGuard implements the per-goroutine recursion counter backing the
// Default executor: Execute runs its closure inline as long as the calling
// goroutine's current recursion depth through Default.Execute is below
// defaultRecursionLimit, and otherwise falls back to the background dispatch
// pool. This lets deep synchronous continuation chains collapse without
// risking a stack overflow.
type recursionGuard struct {
	mu     sync.Mutex
	depths map[int64]int
}

var defaultGuard = &recursionGuard{depths: make(map[int64]int)}

// enter reports whether the caller may proceed inline: if the current
// goroutine's depth is below limit, it increments the depth and returns true;
// otherwise it leaves the depth unchanged and returns false.
func (g *recursionGuard) enter(limit int) bool {
	id := goroutineID()

	g.mu.Lock()
	defer g.mu.Unlock()

	depth := g.depths[id]
	if depth >= limit {
		return false
	}
	g.depths[id] = depth + 1
	return true
}

func (g *recursionGuard) leave() {
	id := goroutineID()

	g.mu.Lock()
	defer g.mu.Unlock()

	depth := g.depths[id]
	if depth <= 1 {
		delete(g.depths, id)
		return
	}
	g.depths[id] = depth - 1
}
