package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     entities.Config
	logger  *logrus.Logger
}

// NewPlaywrightDriver - starts playwright and launches chromium
func NewPlaywrightDriver(cfg entities.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-setuid-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.WithField("headless", cfg.Headless).Info("playwright chromium launched")

	return &playwrightDriver{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// NewPage - every page lives in its own browser context, so cookies and
// storage never leak between scenarios
func (d *playwrightDriver) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if d.cfg.BaseURL != "" {
		contextOptions.BaseURL = playwright.String(d.cfg.BaseURL)
	}

	bctx, err := d.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		d.logger.WithField("message", dialog.Message()).Debug("accepting dialog")
		dialog.Accept()
	})

	return &playwrightPage{context: bctx, page: page, logger: d.logger}, nil
}

// Close - closes the browser and stops the playwright driver
func (d *playwrightDriver) Close() error {
	var errs []error

	if d.browser != nil {
		if err := d.browser.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		d.browser = nil
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		d.pw = nil
	}

	return errors.Join(errs...)
}

type playwrightPage struct {
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger

	closeOnce sync.Once
	closeErr  error
}

// Navigate - navigates to the specified URL and waits for the load event
func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	return cancellable(ctx, p.abort, func() error {
		_, err := p.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   timeoutMs(ctx, 30*time.Second),
		})
		return err
	})
}

// closeContext - closing the context closes the page with it. Runs once.
func (p *playwrightPage) closeContext() error {
	p.closeOnce.Do(func() {
		if err := p.context.Close(); err != nil && !isClosedErr(err) {
			p.closeErr = fmt.Errorf("failed to close context: %w", err)
		}
	})
	return p.closeErr
}

// abort - closes the browser context under a blocked call so it returns
func (p *playwrightPage) abort() {
	if err := p.closeContext(); err != nil {
		p.logger.WithError(err).Warn("failed to abort page")
	}
}

// QueryElement - resolves the selector once; nil when nothing matches
func (p *playwrightPage) QueryElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	locator := p.page.Locator(string(selector))
	count, err := locator.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	return &playwrightElement{page: p, locator: locator.First()}, nil
}

func (p *playwrightPage) URL(ctx context.Context) (string, error) {
	return p.page.URL(), nil
}

// VisibleText - extracts visible text content from the page
func (p *playwrightPage) VisibleText(ctx context.Context) (string, error) {
	result, err := p.page.Evaluate(visibleTextJS)
	if err != nil {
		return "", err
	}
	if text, ok := result.(string); ok {
		return text, nil
	}
	return "", nil
}

func (p *playwrightPage) Close() error {
	return p.closeContext()
}

type playwrightElement struct {
	page    *playwrightPage
	locator playwright.Locator
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	return e.locator.IsVisible()
}

func (e *playwrightElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.locator.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: timeoutMs(ctx, 0)})
}

func (e *playwrightElement) IsEditable(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, isEditableJS)
}

func (e *playwrightElement) IsObscured(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, isObscuredJS)
}

// Fill - clears the field and sets the new value
func (e *playwrightElement) Fill(ctx context.Context, text string) error {
	return cancellable(ctx, e.page.abort, func() error {
		if err := e.locator.Clear(playwright.LocatorClearOptions{Timeout: timeoutMs(ctx, 0)}); err != nil {
			return err
		}
		return e.locator.Fill(text, playwright.LocatorFillOptions{Timeout: timeoutMs(ctx, 0)})
	})
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return cancellable(ctx, e.page.abort, func() error {
		return e.locator.Click(playwright.LocatorClickOptions{Timeout: timeoutMs(ctx, 0)})
	})
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	text, err := e.locator.TextContent(playwright.LocatorTextContentOptions{Timeout: timeoutMs(ctx, 0)})
	return strings.TrimSpace(text), err
}

func (e *playwrightElement) evalBool(ctx context.Context, js string) (bool, error) {
	result, err := e.locator.Evaluate(js, nil, playwright.LocatorEvaluateOptions{Timeout: timeoutMs(ctx, 0)})
	if err != nil {
		return false, err
	}
	b, _ := result.(bool)
	return b, nil
}

// timeoutMs - playwright takes timeouts in milliseconds rather than contexts.
// Uses the context deadline when there is one, otherwise def (nil for zero).
func timeoutMs(ctx context.Context, def time.Duration) *float64 {
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining < time.Millisecond {
			remaining = time.Millisecond
		}
		return playwright.Float(float64(remaining.Milliseconds()))
	}
	if def <= 0 {
		return nil
	}
	return playwright.Float(float64(def.Milliseconds()))
}

// isClosedErr - closing twice is not an error worth reporting
func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

var _ interfaces.Page = (*playwrightPage)(nil)
