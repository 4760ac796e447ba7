package interfaces

import (
	"context"

	"ui_harness/domain/entities"
)

// Element is a live handle to one DOM node. Handles may go stale after a
// navigation, so callers re-query through Page.QueryElement instead of keeping them.
type Element interface {
	// IsVisible checks whether the element is rendered and not hidden
	IsVisible(ctx context.Context) (bool, error)

	// IsEnabled checks whether the element is not disabled
	IsEnabled(ctx context.Context) (bool, error)

	// IsEditable checks whether the element accepts text input
	IsEditable(ctx context.Context) (bool, error)

	// IsObscured checks whether another element covers the element's click point
	IsObscured(ctx context.Context) (bool, error)

	// Fill clears the element and sets its value
	Fill(ctx context.Context, text string) error

	// Click dispatches a click on the element
	Click(ctx context.Context) error

	// Text returns the element's text content
	Text(ctx context.Context) (string, error)
}

// Page is the browser-control capability the harness is built on. One Page
// belongs to exactly one scenario.
type Page interface {
	// Navigate loads the URL and waits for the page to settle
	Navigate(ctx context.Context, url string) error

	// QueryElement returns the first element matching selector, or nil when none matches
	QueryElement(ctx context.Context, selector entities.Selector) (Element, error)

	// URL returns the current page URL
	URL(ctx context.Context) (string, error)

	// VisibleText returns the rendered text of the page
	VisibleText(ctx context.Context) (string, error)

	// Close releases the tab and any context owned by it
	Close() error
}

// Driver creates isolated pages
type Driver interface {
	// NewPage opens a fresh page with no state shared with other pages
	NewPage(ctx context.Context) (Page, error)

	// Close shuts the browser down
	Close() error
}
