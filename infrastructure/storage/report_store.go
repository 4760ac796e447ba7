package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/spf13/afero"
)

type reportStore struct {
	fs  afero.Fs
	dir string
}

// NewReportStore - creates new report storage rooted at dir
func NewReportStore(fs afero.Fs, dir string) (interfaces.ReportStore, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	return &reportStore{
		fs:  fs,
		dir: dir,
	}, nil
}

// Save - writes report as <runId>.json
func (s *reportStore) Save(report *entities.Report) error {
	if report.RunID == "" {
		return fmt.Errorf("report %q has no run id", report.Name)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.path(report.RunID), data, 0644)
}

// Load - reads the report stored for runID
func (s *reportStore) Load(runID string) (*entities.Report, error) {
	data, err := afero.ReadFile(s.fs, s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("report %s not found", runID)
		}
		return nil, err
	}

	var report entities.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", runID, err)
	}

	return &report, nil
}

// List - loads every stored report, ordered by start time
func (s *reportStore) List() ([]*entities.Report, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}

	reports := make([]*entities.Report, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		report, err := s.Load(strings.TrimSuffix(info.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})
	return reports, nil
}

func (s *reportStore) path(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}
