package entities

import "time"

// Outcome represents the lifecycle state of a step or a whole scenario
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeRunning   Outcome = "running"
	OutcomePassed    Outcome = "passed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// IsTerminal returns true if the outcome is final
func (o Outcome) IsTerminal() bool {
	return o == OutcomePassed || o == OutcomeFailed || o == OutcomeCancelled
}

// StepReport represents the result of one executed step
type StepReport struct {
	Index       int       `json:"index"`
	Description string    `json:"description"`
	Operation   Operation `json:"operation"`
	Outcome     Outcome   `json:"outcome"`
	Diagnostic  string    `json:"diagnostic,omitempty"`
	DurationMs  int64     `json:"durationMs"`
}

// Failure points at the step that halted a scenario
type Failure struct {
	StepIndex   int    `json:"stepIndex"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// Report is the externally observable result of one scenario run
type Report struct {
	RunID      string       `json:"runId"`
	Name       string       `json:"name"`
	Outcome    Outcome      `json:"outcome"`
	Steps      []StepReport `json:"steps"`
	Failure    *Failure     `json:"failure,omitempty"`
	StartedAt  time.Time    `json:"startedAt"`
	DurationMs int64        `json:"durationMs"`
}

// Passed returns true if every step of the scenario succeeded
func (r *Report) Passed() bool {
	return r.Outcome == OutcomePassed
}
