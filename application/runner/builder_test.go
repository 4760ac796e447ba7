package runner_test

import (
	"testing"
	"time"

	"ui_harness/application/runner"
	"ui_harness/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsStepsInOrder(t *testing.T) {
	s, err := runner.NewScenario("checkout").
		Navigate("open", "/").
		Fill("type", "#q", "shoes").
		Click("search", "#go").Within(2*time.Second).
		WaitVisible("results", ".results").
		ExpectURL("url", "/search").
		ExpectText("title", "Results").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "checkout", s.Name)
	require.Len(t, s.Steps, 6)
	ops := make([]entities.Operation, len(s.Steps))
	for i, step := range s.Steps {
		ops[i] = step.Operation
	}
	assert.Equal(t, []entities.Operation{
		entities.OpNavigate, entities.OpFill, entities.OpClick,
		entities.OpWaitVisible, entities.OpAssertURL, entities.OpAssertText,
	}, ops)
	assert.Equal(t, 2*time.Second, s.Steps[2].Timeout)
	assert.Zero(t, s.Steps[1].Timeout)
	assert.Equal(t, "shoes", s.Steps[1].Value)
}

func TestBuilder_BuildDoesNotAliasSteps(t *testing.T) {
	b := runner.NewScenario("alias").Navigate("open", "/")
	first := b.MustBuild()
	b.Click("more", "#x")

	assert.Len(t, first.Steps, 1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		scenario entities.Scenario
		wantErr  string
	}{
		{"no name", entities.Scenario{Steps: []entities.Step{{Description: "a", Operation: entities.OpNavigate, Value: "/"}}}, "name is required"},
		{"no steps", entities.Scenario{Name: "x"}, "has no steps"},
		{"unknown operation", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: "hover"}}}, `unknown operation "hover"`},
		{"missing target", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpClick}}}, "requires a target"},
		{"navigate without url", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpNavigate}}}, "requires a url"},
		{"text without expectation", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpAssertText}}}, "requires expected text"},
		{"bad url regexp", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpAssertURL, Expected: "/(/"}}}, "step 0 (a)"},
		{"empty url regexp", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpAssertURL, Expected: "//"}}}, "empty regular expression"},
		{"negative timeout", entities.Scenario{Name: "x", Steps: []entities.Step{{Description: "a", Operation: entities.OpNavigate, Value: "/", Timeout: -time.Second}}}, "negative timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, runner.Validate(tt.scenario), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	err := runner.Validate(entities.Scenario{Steps: []entities.Step{
		{Description: "a", Operation: entities.OpFill},
		{Description: "b", Operation: entities.OpNavigate},
	}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "step 0 (a)")
	assert.Contains(t, err.Error(), "step 1 (b)")
}

func TestMustBuild_PanicsOnInvalidScenario(t *testing.T) {
	assert.Panics(t, func() { runner.NewScenario("").MustBuild() })
}

func TestSauceDemoLogin(t *testing.T) {
	s := runner.SauceDemoLogin("standard_user", "secret_sauce")

	require.NoError(t, runner.Validate(s))
	require.Len(t, s.Steps, 10)
	assert.Contains(t, s.Name, "standard_user")
	assert.NotContains(t, s.Name, "secret_sauce")
	assert.Equal(t, "verify navigation", s.Steps[7].Description)
	assert.Equal(t, runner.PasswordField, s.Steps[4].Target)
	assert.Equal(t, "secret_sauce", s.Steps[4].Value)
}
