package interfaces

import "ui_harness/domain/entities"

// ReportStore persists scenario reports
type ReportStore interface {
	// Save writes the report under its RunID
	Save(report *entities.Report) error

	// Load reads the report stored under runID
	Load(runID string) (*entities.Report, error)

	// List returns every stored report, oldest first
	List() ([]*entities.Report, error)
}
