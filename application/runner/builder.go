package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ui_harness/application/harness"
	"ui_harness/domain/entities"
)

// Builder assembles a scenario step by step
type Builder struct {
	scenario entities.Scenario
}

// NewScenario - starts a scenario builder
func NewScenario(name string) *Builder {
	return &Builder{scenario: entities.Scenario{Name: name}}
}

func (b *Builder) add(step entities.Step) *Builder {
	b.scenario.Steps = append(b.scenario.Steps, step)
	return b
}

// Navigate - loads url; relative urls are resolved against the base URL
func (b *Builder) Navigate(description, url string) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpNavigate, Value: url})
}

// Fill - types text into target
func (b *Builder) Fill(description string, target entities.Selector, text string) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpFill, Target: target, Value: text})
}

// Click - clicks target
func (b *Builder) Click(description string, target entities.Selector) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpClick, Target: target})
}

// WaitVisible - waits for target to be visible
func (b *Builder) WaitVisible(description string, target entities.Selector) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpWaitVisible, Target: target})
}

// ExpectVisible - asserts target becomes visible
func (b *Builder) ExpectVisible(description string, target entities.Selector) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpAssertVisible, Target: target})
}

// ExpectURL - asserts the page URL matches pattern (/regexp/ or prefix)
func (b *Builder) ExpectURL(description, pattern string) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpAssertURL, Expected: pattern})
}

// ExpectText - asserts text is rendered somewhere on the page
func (b *Builder) ExpectText(description, text string) *Builder {
	return b.add(entities.Step{Description: description, Operation: entities.OpAssertText, Expected: text})
}

// Within - overrides the timeout of the last added step
func (b *Builder) Within(timeout time.Duration) *Builder {
	if n := len(b.scenario.Steps); n > 0 {
		b.scenario.Steps[n-1].Timeout = timeout
	}
	return b
}

// Build - validates and returns the scenario
func (b *Builder) Build() (entities.Scenario, error) {
	s := b.scenario
	s.Steps = append([]entities.Step(nil), b.scenario.Steps...)
	if err := Validate(s); err != nil {
		return entities.Scenario{}, err
	}
	return s, nil
}

// MustBuild - like Build but panics on an invalid scenario
func (b *Builder) MustBuild() entities.Scenario {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Validate - checks a scenario is runnable before any page is opened
func Validate(s entities.Scenario) error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("scenario name is required"))
	}
	if len(s.Steps) == 0 {
		errs = append(errs, fmt.Errorf("scenario %q has no steps", s.Name))
	}

	for i, step := range s.Steps {
		where := fmt.Sprintf("step %d (%s)", i, step.Description)
		switch {
		case !step.Operation.Valid():
			errs = append(errs, fmt.Errorf("%s: unknown operation %q", where, step.Operation))
			continue
		case step.Operation.NeedsTarget() && step.Target == "":
			errs = append(errs, fmt.Errorf("%s: %s requires a target selector", where, step.Operation))
		case step.Operation == entities.OpNavigate && step.Value == "":
			errs = append(errs, fmt.Errorf("%s: navigate requires a url", where))
		case step.Operation == entities.OpAssertText && step.Expected == "":
			errs = append(errs, fmt.Errorf("%s: assert_text requires expected text", where))
		case step.Operation == entities.OpAssertURL && step.Expected == "":
			errs = append(errs, fmt.Errorf("%s: assert_url requires a pattern", where))
		case step.Operation == entities.OpAssertURL:
			if _, err := harness.ParseURLPattern(step.Expected, ""); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", where, err))
			}
		}
		if step.Timeout < 0 {
			errs = append(errs, fmt.Errorf("%s: negative timeout", where))
		}
	}
	return errors.Join(errs...)
}
