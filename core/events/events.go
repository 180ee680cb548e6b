// Package events defines the notifications the engine publishes on the
// internal event bus while a run is in progress. Consumers such as the serve
// mode subscribe to report progress; publishing is always optional and
// non-blocking.
package events

// RunStartedEvent is published once when a best-of-N run begins.
type RunStartedEvent struct {
	RunID    string
	Attempts int
}

// AttemptFinishedEvent is published after each attempt completes or fails.
type AttemptFinishedEvent struct {
	RunID           string
	Index           int
	State           string
	UnassignedHours int
	FitnessScore    float64
	Err             error
}

// BestImprovedEvent is published when an attempt becomes the new best.
type BestImprovedEvent struct {
	RunID           string
	Index           int
	UnassignedHours int
	FitnessScore    float64
}

// RunFinishedEvent is published once with the outcome of the whole run.
type RunFinishedEvent struct {
	RunID              string
	Success            bool
	AttemptsMade       int
	SuccessfulAttempts int
	MinFitnessScore    float64
}
