package entities

import "time"

// Selector identifies one logical element on a page, e.g. `[data-test="username"]`
type Selector string

// Operation represents the kind of work a step performs
type Operation string

const (
	OpNavigate      Operation = "navigate"
	OpFill          Operation = "fill"
	OpClick         Operation = "click"
	OpWaitVisible   Operation = "wait_visible"
	OpAssertVisible Operation = "assert_visible"
	OpAssertURL     Operation = "assert_url"
	OpAssertText    Operation = "assert_text"
)

// Step represents a single action or assertion inside a scenario
type Step struct {
	Description string        `json:"description" yaml:"description"`
	Operation   Operation     `json:"operation" yaml:"operation"`
	Target      Selector      `json:"target,omitempty" yaml:"target,omitempty"`
	Value       string        `json:"value,omitempty" yaml:"value,omitempty"`
	Expected    string        `json:"expected,omitempty" yaml:"expected,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Scenario represents one end-to-end test case. Steps run in order.
type Scenario struct {
	Name  string `json:"name" yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// IsAction reports whether the operation interacts with the page rather than observing it
func (o Operation) IsAction() bool {
	switch o {
	case OpNavigate, OpFill, OpClick:
		return true
	}
	return false
}

// Valid reports whether the operation is known
func (o Operation) Valid() bool {
	switch o {
	case OpNavigate, OpFill, OpClick, OpWaitVisible, OpAssertVisible, OpAssertURL, OpAssertText:
		return true
	}
	return false
}

// NeedsTarget reports whether the operation is performed against a selector
func (o Operation) NeedsTarget() bool {
	switch o {
	case OpFill, OpClick, OpWaitVisible, OpAssertVisible:
		return true
	}
	return false
}
