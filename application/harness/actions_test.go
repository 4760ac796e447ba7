package harness_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ui_harness/application/harness"
	"ui_harness/domain/entities"
	"ui_harness/infrastructure/browser/memory"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://shop.test"

var testConfig = entities.Config{
	BaseURL:        testBaseURL,
	DefaultTimeout: 150 * time.Millisecond,
	PollInterval:   10 * time.Millisecond,
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// openPage - loads "/" of site on a fresh page closed at test end
func openPage(t *testing.T, site *memory.Site) *memory.Page {
	t.Helper()
	page := site.NewPage()
	t.Cleanup(func() { page.Close() })
	require.NoError(t, page.Navigate(context.Background(), "/"))
	return page
}

func pageWith(t *testing.T, body string) *memory.Page {
	t.Helper()
	return openPage(t, memory.NewSite(testBaseURL).Handle("/", "<html><body>"+body+"</body></html>"))
}

func TestLocate_NeverFailsForMissingElement(t *testing.T) {
	page := pageWith(t, `<p>nothing here</p>`)

	loc := harness.Locate(page, "#missing")
	require.NotNil(t, loc)
	assert.Equal(t, entities.Selector("#missing"), loc.Selector())

	exists, err := loc.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestActions_MissingElementTimesOutAfterDefaultTimeout(t *testing.T) {
	page := pageWith(t, `<p>nothing here</p>`)
	exec := harness.NewExecutor(testConfig, quietLogger())
	loc := harness.Locate(page, "#missing")

	tests := []struct {
		name string
		act  func() error
	}{
		{"fill", func() error { return exec.Fill(context.Background(), loc, "x") }},
		{"click", func() error { return exec.Click(context.Background(), loc) }},
		{"wait visible", func() error { return exec.WaitVisible(context.Background(), loc, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			err := tt.act()
			elapsed := time.Since(start)

			var timeoutErr *entities.TimeoutError
			require.ErrorAs(t, err, &timeoutErr)
			assert.Equal(t, "no element matches", timeoutErr.LastObserved)
			assert.GreaterOrEqual(t, elapsed, testConfig.DefaultTimeout)
			assert.Less(t, elapsed, testConfig.DefaultTimeout+200*time.Millisecond)
		})
	}
}

func TestFill_ClearsAndSetsValue(t *testing.T) {
	page := pageWith(t, `<input data-test="username" value="old">`)
	exec := harness.NewExecutor(testConfig, quietLogger())
	loc := harness.Locate(page, `[data-test="username"]`)

	require.NoError(t, exec.Fill(context.Background(), loc, "standard_user"))
	assert.Equal(t, "standard_user", page.Value(`[data-test="username"]`))

	require.NoError(t, exec.Fill(context.Background(), loc, "other"))
	assert.Equal(t, "other", page.Value(`[data-test="username"]`))
}

func TestFill_RejectsElementsThatCannotTakeInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"disabled input", `<input id="field" disabled>`},
		{"read-only input", `<input id="field" readonly>`},
		{"submit button", `<input id="field" type="submit" value="Login">`},
		{"plain div", `<div id="field">text</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pageWith(t, tt.body)
			exec := harness.NewExecutor(testConfig, quietLogger())

			err := exec.Fill(context.Background(), harness.Locate(page, "#field"), "text")

			var actionErr *entities.ActionError
			require.ErrorAs(t, err, &actionErr)
			assert.Equal(t, entities.NotEditable, actionErr.Kind)
			assert.Equal(t, entities.Selector("#field"), actionErr.Selector)
		})
	}
}

func TestClick_RejectsDisabledOrObscuredElements(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"disabled", `<button id="go" disabled>Go</button>`, "disabled"},
		{"under overlay", `<div inert><button id="go">Go</button></div>`, "obscured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pageWith(t, tt.body)
			exec := harness.NewExecutor(testConfig, quietLogger())

			err := exec.Click(context.Background(), harness.Locate(page, "#go"))

			var actionErr *entities.ActionError
			require.ErrorAs(t, err, &actionErr)
			assert.Equal(t, entities.NotClickable, actionErr.Kind)
			assert.Contains(t, actionErr.Reason, tt.reason)
		})
	}
}

func TestClick_WaitsForElementToBecomeVisible(t *testing.T) {
	clicked := make(chan struct{}, 1)
	site := memory.NewSite(testBaseURL).
		Handle("/", `<html><body><button id="go" hidden>Go</button></body></html>`).
		OnClick("#go", func(p *memory.Page) error {
			clicked <- struct{}{}
			return nil
		})
	page := openPage(t, site)
	page.After(40*time.Millisecond, func(p *memory.Page) { p.RemoveAttr("#go", "hidden") })

	exec := harness.NewExecutor(testConfig, quietLogger())
	require.NoError(t, exec.Click(context.Background(), harness.Locate(page, "#go")))

	select {
	case <-clicked:
	default:
		t.Fatal("click handler did not run")
	}
}

func TestLocator_ResolvesAgainstTheLivePage(t *testing.T) {
	site := memory.NewSite(testBaseURL).
		Handle("/", `<html><body><a id="next" href="/second">next</a></body></html>`).
		Handle("/second", `<html><body><h1 id="title">Second</h1></body></html>`)
	page := openPage(t, site)
	ctx := context.Background()

	// created before the element exists
	title := harness.Locate(page, "#title")
	exists, err := title.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	exec := harness.NewExecutor(testConfig, quietLogger())
	require.NoError(t, exec.Click(ctx, harness.Locate(page, "#next")))

	require.NoError(t, exec.WaitVisible(ctx, title, 0))
	el, err := title.Resolve(ctx)
	require.NoError(t, err)
	text, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", text)
}

func TestWaitVisible_HiddenElementReportsState(t *testing.T) {
	page := pageWith(t, `<div style="display: none"><span id="msg">hi</span></div>`)
	exec := harness.NewExecutor(testConfig, quietLogger())

	err := exec.WaitVisible(context.Background(), harness.Locate(page, "#msg"), 50*time.Millisecond)

	var timeoutErr *entities.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "element present but hidden", timeoutErr.LastObserved)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
}

func TestClick_FailedNavigationIsNotAnActionError(t *testing.T) {
	page := pageWith(t, `<a id="broken" href="/gone.html">broken</a>`)
	exec := harness.NewExecutor(testConfig, quietLogger())

	err := exec.Click(context.Background(), harness.Locate(page, "#broken"))

	var navErr *entities.NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, testBaseURL+"/gone.html", navErr.URL)

	var actionErr *entities.ActionError
	assert.False(t, errors.As(err, &actionErr))
}
