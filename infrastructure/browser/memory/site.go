// Package memory is an in-process browser backend. Pages are parsed HTML
// documents held in goquery selections; clicks run handlers registered on the
// site. It lets scenarios run without a browser engine.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"
)

// Handler reacts to a click on a matching element
type Handler func(p *Page) error

type clickHandler struct {
	selector entities.Selector
	handle   Handler
}

// Site is a set of HTML documents served under one base URL.
// Configure it before opening pages.
type Site struct {
	baseURL   string
	documents map[string]string
	clicks    []clickHandler
}

// NewSite - creates an empty site rooted at baseURL
func NewSite(baseURL string) *Site {
	return &Site{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		documents: make(map[string]string),
	}
}

// Handle - serves html at path
func (s *Site) Handle(path string, html string) *Site {
	s.documents[normalizePath(path)] = html
	return s
}

// OnClick - runs h whenever an element matching selector is clicked
func (s *Site) OnClick(selector entities.Selector, h Handler) *Site {
	s.clicks = append(s.clicks, clickHandler{selector: selector, handle: h})
	return s
}

// NewPage - opens a fresh, unloaded page
func (s *Site) NewPage() *Page {
	return &Page{site: s, url: blankURL}
}

// pathOf maps an absolute or relative URL onto a document path
func (s *Site) pathOf(url string) (string, error) {
	switch {
	case strings.HasPrefix(url, s.baseURL):
		return normalizePath(strings.TrimPrefix(url, s.baseURL)), nil
	case strings.HasPrefix(url, "/"):
		return normalizePath(url), nil
	case !strings.Contains(url, "://"):
		return normalizePath("/" + url), nil
	}
	return "", fmt.Errorf("host not served by %s", s.baseURL)
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Driver hands out isolated pages of one site and tracks which are still open
type Driver struct {
	site *Site

	mu   sync.Mutex
	open map[*Page]struct{}
}

// NewDriver - creates a driver serving site
func NewDriver(site *Site) *Driver {
	return &Driver{site: site, open: make(map[*Page]struct{})}
}

// NewPage - opens a page that shares no state with other pages
func (d *Driver) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := d.site.NewPage()
	p.onClose = func() {
		d.mu.Lock()
		delete(d.open, p)
		d.mu.Unlock()
	}

	d.mu.Lock()
	d.open[p] = struct{}{}
	d.mu.Unlock()
	return p, nil
}

// OpenPages - counts pages that were opened and not closed yet
func (d *Driver) OpenPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}

// Close - closes every page still open
func (d *Driver) Close() error {
	d.mu.Lock()
	pages := make([]*Page, 0, len(d.open))
	for p := range d.open {
		pages = append(pages, p)
	}
	d.mu.Unlock()

	for _, p := range pages {
		p.Close()
	}
	return nil
}

var _ interfaces.Driver = (*Driver)(nil)
