// Package scenariofile reads scenario definitions from YAML.
//
//	scenarios:
//	  - name: login
//	    steps:
//	      - description: open login page
//	        operation: navigate
//	        value: /
//	      - description: verify navigation
//	        operation: assert_url
//	        expected: /.*\/inventory\.html$/
//	        timeout: 10s
package scenariofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"ui_harness/domain/entities"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type file struct {
	Scenarios []entities.Scenario `yaml:"scenarios"`
}

// Parse decodes scenarios from YAML, rejecting unknown keys
func Parse(data []byte) ([]entities.Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scenario file")
		}
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("no scenarios defined")
	}
	return f.Scenarios, nil
}

// Load reads and parses every file in paths, in order
func Load(fs afero.Fs, paths ...string) ([]entities.Scenario, error) {
	var all []entities.Scenario
	for _, path := range paths {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		scenarios, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		all = append(all, scenarios...)
	}
	return all, nil
}
