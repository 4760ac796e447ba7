package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

type rodDriver struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *logrus.Logger
}

// NewRodDriver - launches chromium over CDP with go-rod
func NewRodDriver(cfg entities.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-dev-shm-usage").
		NoSandbox(true)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	logger.WithField("control_url", controlURL).Info("rod chromium launched")

	return &rodDriver{browser: browser, launcher: l, logger: logger}, nil
}

// NewPage - opens a tab in a fresh incognito context
func (d *rodDriver) NewPage(ctx context.Context) (interfaces.Page, error) {
	incognito, err := d.browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		incognito.Close()
		return nil, fmt.Errorf("failed to create tab: %w", err)
	}

	return &rodPage{incognito: incognito, page: page}, nil
}

func (d *rodDriver) Close() error {
	err := d.browser.Close()
	d.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

type rodPage struct {
	incognito *rod.Browser
	page      *rod.Page
}

// Navigate - navigates and waits for the load event
func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// QueryElement - Elements does not wait, so a missing element is an empty result
func (p *rodPage) QueryElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	els, err := p.page.Context(ctx).Elements(string(selector))
	if err != nil {
		return nil, err
	}
	if els.Empty() {
		return nil, nil
	}
	return &rodElement{el: els.First()}, nil
}

func (p *rodPage) URL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (p *rodPage) VisibleText(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(visibleTextJS)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Close - closes the tab, then disposes its incognito context
func (p *rodPage) Close() error {
	var errs []error
	if p.page != nil {
		if err := p.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close tab: %w", err))
		}
		p.page = nil
	}
	if p.incognito != nil {
		if err := p.incognito.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		p.incognito = nil
	}
	return errors.Join(errs...)
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) IsVisible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *rodElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, isEnabledJS)
}

func (e *rodElement) IsEditable(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, isEditableJS)
}

func (e *rodElement) IsObscured(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, isObscuredJS)
}

// Fill - empties the field, then types text with input events
func (e *rodElement) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if _, err := el.Eval(onThis(clearJS)); err != nil {
		return err
	}
	return el.Input(text)
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	return strings.TrimSpace(text), err
}

func (e *rodElement) evalBool(ctx context.Context, js string) (bool, error) {
	res, err := e.el.Context(ctx).Eval(onThis(js))
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// onThis - rod binds the element to `this` rather than passing it
func onThis(fn string) string {
	return "() => (" + fn + ")(this)"
}

var _ interfaces.Page = (*rodPage)(nil)
