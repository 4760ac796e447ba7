package harness

import (
	"context"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"
)

// Locator is a deferred reference to an element. It holds no DOM node; every
// operation resolves the selector against the live page again.
type Locator struct {
	page     interfaces.Page
	selector entities.Selector
}

// Locate - creates a locator. It never touches the page and never fails.
func Locate(page interfaces.Page, selector entities.Selector) *Locator {
	return &Locator{page: page, selector: selector}
}

// Selector - returns the selector this locator resolves
func (l *Locator) Selector() entities.Selector {
	return l.selector
}

// Resolve - queries the live page. Returns a nil element when nothing matches.
func (l *Locator) Resolve(ctx context.Context) (interfaces.Element, error) {
	return l.page.QueryElement(ctx, l.selector)
}

// Exists - reports whether the selector matches right now, without waiting
func (l *Locator) Exists(ctx context.Context) (bool, error) {
	el, err := l.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return el != nil, nil
}

// visible - one visibility check, in the shape Poll expects
func (l *Locator) visible(ctx context.Context) (bool, string, error) {
	el, err := l.Resolve(ctx)
	if err != nil {
		return false, "", err
	}
	if el == nil {
		return false, "no element matches", nil
	}
	ok, err := el.IsVisible(ctx)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, "element present but hidden", nil
	}
	return true, "visible", nil
}
