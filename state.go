package async

// TaskCompletionState is the terminal-state sum type backing [Task] and
// [taskCore]: a Task is either still Pending, or has settled into exactly
// one of Success, Failure, or Cancelled, and never leaves that terminal
// state once reached.
type TaskCompletionState uint8

const (
	// Pending is the state of a Task that has not yet completed.
	Pending TaskCompletionState = iota
	// Success is the state of a Task that completed with a value.
	Success
	// Failure is the state of a Task that completed with an error.
	Failure
	// Cancelled is the state of a Task that was cancelled.
	Cancelled
)

// String returns a human-readable name, suitable for logging by the
// embedding application (this package itself never logs).
func (s TaskCompletionState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	case Cancelled:
		return "Cancelled"
	default:
		return "TaskCompletionState(?)"
	}
}
