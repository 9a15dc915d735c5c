package async

import (
	"sync"
	"time"
)

// TimerAdapter is the platform timer primitive behind [WithDelay].
// Overriding it is mainly useful for tests that want a virtual clock
// instead of wall-clock time.
type TimerAdapter interface {
	// AfterFunc arranges for f to run once after d has elapsed.
	AfterFunc(d time.Duration, f func())
}

type realTimerAdapter struct{}

func (realTimerAdapter) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

var (
	timerMu      sync.Mutex
	timerAdapter TimerAdapter = realTimerAdapter{}
)

// SetTimerAdapter installs a as the timer used by WithDelay, overriding the
// default wall-clock timer. Passing nil restores the default.
func SetTimerAdapter(a TimerAdapter) {
	timerMu.Lock()
	if a == nil {
		a = realTimerAdapter{}
	}
	timerAdapter = a
	timerMu.Unlock()
}

// WithDelay returns a Task that succeeds with Void{} after at least d has
// elapsed. A negative d is treated as zero. Clock skew is tolerated: the
// delay mechanism itself never faults or cancels the returned Task.
func WithDelay(d time.Duration) Task[Void] {
	if d < 0 {
		d = 0
	}

	s := NewTaskSource[Void]()

	timerMu.Lock()
	a := timerAdapter
	timerMu.Unlock()

	a.AfterFunc(d, func() {
		s.TrySetResult(Void{})
	})

	return s.Task()
}
