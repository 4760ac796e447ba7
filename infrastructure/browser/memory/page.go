package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/PuerkitoBio/goquery"
)

const blankURL = "about:blank"

var (
	ErrPageClosed   = errors.New("page closed")
	ErrStaleElement = errors.New("element is not attached to the current document")
)

// Page is one in-memory tab
type Page struct {
	site *Site

	mu      sync.Mutex
	url     string
	doc     *goquery.Document
	timers  []*time.Timer
	closed  bool
	onClose func()
}

// Navigate - loads the document served at url
func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.Load(url)
}

// Load - replaces the current document with the one served at url
func (p *Page) Load(url string) error {
	path, err := p.site.pathOf(url)
	if err != nil {
		return err
	}
	html, ok := p.site.documents[path]
	if !ok {
		return fmt.Errorf("404 not found: %s", path)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPageClosed
	}
	p.doc = doc
	p.url = p.site.baseURL + path
	return nil
}

// Follow - loads url as the result of an interaction (link, form submit).
// Failures are reported as *entities.NavigationError.
func (p *Page) Follow(url string) error {
	if err := p.Load(url); err != nil {
		target := url
		if path, perr := p.site.pathOf(url); perr == nil {
			target = p.site.baseURL + path
		}
		return &entities.NavigationError{URL: target, Err: err}
	}
	return nil
}

// QueryElement - returns the first element matching selector, or nil
func (p *Page) QueryElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPageClosed
	}
	if p.doc == nil {
		return nil, nil
	}

	sel := p.doc.Find(string(selector)).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return &element{page: p, doc: p.doc, sel: sel}, nil
}

// URL - returns the current URL
func (p *Page) URL(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrPageClosed
	}
	return p.url, nil
}

// VisibleText - returns the text of the body, skipping hidden subtrees
func (p *Page) VisibleText(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrPageClosed
	}
	if p.doc == nil {
		return "", nil
	}

	var texts []string
	collectText(p.doc.Find("body"), &texts)
	return strings.Join(texts, " "), nil
}

// Close - stops pending timers and releases the page. Safe to call twice.
func (p *Page) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
	p.doc = nil
	onClose := p.onClose
	p.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return nil
}

// Closed - reports whether Close has been called
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// After - runs fn once d has elapsed, unless the page is closed first
func (p *Page) After(d time.Duration, fn func(p *Page)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.timers = append(p.timers, time.AfterFunc(d, func() {
		if p.Closed() {
			return
		}
		fn(p)
	}))
}

// Value - returns the value attribute of the first element matching selector
func (p *Page) Value(selector entities.Selector) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return ""
	}
	v, _ := p.doc.Find(string(selector)).First().Attr("value")
	return v
}

// SetAttr - sets an attribute on every element matching selector
func (p *Page) SetAttr(selector entities.Selector, name, value string) {
	p.mutate(selector, func(s *goquery.Selection) { s.SetAttr(name, value) })
}

// RemoveAttr - removes an attribute from every element matching selector
func (p *Page) RemoveAttr(selector entities.Selector, name string) {
	p.mutate(selector, func(s *goquery.Selection) { s.RemoveAttr(name) })
}

// SetText - replaces the text of every element matching selector
func (p *Page) SetText(selector entities.Selector, text string) {
	p.mutate(selector, func(s *goquery.Selection) { s.SetText(text) })
}

// Append - appends html to every element matching selector
func (p *Page) Append(selector entities.Selector, html string) {
	p.mutate(selector, func(s *goquery.Selection) { s.AppendHtml(html) })
}

func (p *Page) mutate(selector entities.Selector, fn func(s *goquery.Selection)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return
	}
	fn(p.doc.Find(string(selector)))
}

// current - checks the element still belongs to the loaded document. Caller holds p.mu.
func (p *Page) current(doc *goquery.Document) error {
	if p.closed {
		return ErrPageClosed
	}
	if p.doc != doc {
		return ErrStaleElement
	}
	return nil
}

var _ interfaces.Page = (*Page)(nil)
