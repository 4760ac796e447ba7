package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ui_harness/domain/entities"

	"github.com/sirupsen/logrus"
)

// Executor performs user-like actions. Every action waits for the target to
// become visible first.
type Executor struct {
	timeout  time.Duration
	interval time.Duration
	logger   *logrus.Logger
}

// NewExecutor - creates an executor using the config's default timeout and poll interval
func NewExecutor(cfg entities.Config, logger *logrus.Logger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{
		timeout:  orDefault(cfg.DefaultTimeout, entities.DefaultTimeout),
		interval: orDefault(cfg.PollInterval, entities.DefaultPollInterval),
		logger:   logger,
	}
}

// WaitVisible - polls until the element is visible or timeout elapses.
// A zero timeout means the configured default.
func (e *Executor) WaitVisible(ctx context.Context, loc *Locator, timeout time.Duration) error {
	timeout = orDefault(timeout, e.timeout)
	condition := fmt.Sprintf("%q to be visible", loc.Selector())
	return Poll(ctx, condition, timeout, e.interval, loc.visible)
}

// Fill - clears the element and types text into it
func (e *Executor) Fill(ctx context.Context, loc *Locator, text string) error {
	if err := e.WaitVisible(ctx, loc, 0); err != nil {
		return err
	}

	el, err := loc.Resolve(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Err: err}
	}
	if el == nil {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Reason: "element detached"}
	}

	enabled, err := el.IsEnabled(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Err: err}
	}
	if !enabled {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Reason: "element is disabled"}
	}

	editable, err := el.IsEditable(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Err: err}
	}
	if !editable {
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Reason: "element does not accept input"}
	}

	e.logger.WithField("selector", loc.Selector()).Debug("filling element")

	if err := el.Fill(ctx, text); err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		return &entities.ActionError{Kind: entities.NotEditable, Selector: loc.Selector(), Err: err}
	}
	return nil
}

// Click - clicks the element once it is visible, enabled and not covered
func (e *Executor) Click(ctx context.Context, loc *Locator) error {
	if err := e.WaitVisible(ctx, loc, 0); err != nil {
		return err
	}

	el, err := loc.Resolve(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Err: err}
	}
	if el == nil {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Reason: "element detached"}
	}

	enabled, err := el.IsEnabled(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Err: err}
	}
	if !enabled {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Reason: "element is disabled"}
	}

	obscured, err := el.IsObscured(ctx)
	if err != nil {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Err: err}
	}
	if obscured {
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Reason: "element is obscured by another element"}
	}

	e.logger.WithField("selector", loc.Selector()).Debug("clicking element")

	if err := el.Click(ctx); err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		// the click went through; what failed is the page it led to
		var navErr *entities.NavigationError
		if errors.As(err, &navErr) {
			return err
		}
		return &entities.ActionError{Kind: entities.NotClickable, Selector: loc.Selector(), Err: err}
	}
	return nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
