package scanner

import "github.com/bozidoz/ok22/internal/model"

// TaskState is the lifecycle state of a single scan task.
//
// Design decision: The retry loop is modeled as an explicit state
// machine rather than nested control flow so the terminal conditions
// are independently observable in logs and tests. Pending is the only
// initial state; Success and Exhausted are the only terminal states,
// and no transition leads back to Pending.
type TaskState int

const (
	// StatePending means the task has been created but not yet attempted.
	StatePending TaskState = iota
	// StateAttempting means an activation attempt is in flight.
	StateAttempting
	// StateSuccess means an attempt yielded a well-formed payload.
	StateSuccess
	// StateExhausted means every attempt in the budget failed.
	StateExhausted
)

// String returns a human-readable state name for logging.
func (s TaskState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAttempting:
		return "attempting"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state ends the task's lifecycle.
func (s TaskState) IsTerminal() bool {
	return s == StateSuccess || s == StateExhausted
}

// task is the ephemeral per-address unit of work. One task exists per
// address per invocation; it carries the validated address, the attempt
// counter, and the egress path of the current attempt (re-chosen every
// attempt, empty when direct).
type task struct {
	mac     model.MACAddress
	state   TaskState
	attempt int
	egress  string
}

// newTask creates a task in the Pending state.
func newTask(mac model.MACAddress) *task {
	return &task{mac: mac, state: StatePending}
}

// beginAttempt moves the task into Attempting and bumps the counter.
func (t *task) beginAttempt(egress string) {
	t.state = StateAttempting
	t.attempt++
	t.egress = egress
}

// succeed marks the task terminally successful.
func (t *task) succeed() {
	t.state = StateSuccess
}

// exhaust marks the task terminally failed.
func (t *task) exhaust() {
	t.state = StateExhausted
}
