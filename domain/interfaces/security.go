package interfaces

import "ui_harness/domain/entities"

// Redactor decides which step values must not leak into logs and reports
type Redactor interface {
	// IsSensitive checks if a step carries a secret value
	IsSensitive(step entities.Step) bool

	// Describe returns the step value in a form safe to log
	Describe(step entities.Step) string
}
