package memory

import (
	"context"
	"strings"

	"ui_harness/domain/interfaces"

	"github.com/PuerkitoBio/goquery"
)

type element struct {
	page *Page
	doc  *goquery.Document
	sel  *goquery.Selection
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return false, err
	}
	return isVisible(e.sel), nil
}

func (e *element) IsEnabled(ctx context.Context) (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return false, err
	}
	_, disabled := e.sel.Attr("disabled")
	return !disabled, nil
}

func (e *element) IsEditable(ctx context.Context) (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return false, err
	}
	return isEditable(e.sel), nil
}

// IsObscured - elements inside an inert subtree cannot receive pointer events
func (e *element) IsObscured(ctx context.Context) (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return false, err
	}
	_, inert := e.sel.Closest("[inert]").Attr("inert")
	return inert, nil
}

func (e *element) Fill(ctx context.Context, text string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return err
	}
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(text)
	}
	e.sel.SetAttr("value", text)
	return nil
}

// Click - runs the site handlers registered for this element. Anchors with
// no handler follow their href.
func (e *element) Click(ctx context.Context) error {
	e.page.mu.Lock()
	if err := e.page.current(e.doc); err != nil {
		e.page.mu.Unlock()
		return err
	}
	var handlers []Handler
	for _, h := range e.page.site.clicks {
		if e.sel.Closest(string(h.selector)).Length() > 0 {
			handlers = append(handlers, h.handle)
		}
	}
	href, isLink := e.sel.Closest("a[href]").Attr("href")
	e.page.mu.Unlock()

	for _, h := range handlers {
		if err := h(e.page); err != nil {
			return err
		}
	}
	if len(handlers) == 0 && isLink {
		return e.page.Follow(href)
	}
	return nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.page.current(e.doc); err != nil {
		return "", err
	}
	return strings.TrimSpace(e.sel.Text()), nil
}

var _ interfaces.Element = (*element)(nil)

// hiddenSelf - checks the element's own attributes, ignoring ancestors
func hiddenSelf(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "head", "script", "style", "template", "noscript":
		return true
	}
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	if t, _ := s.Attr("type"); goquery.NodeName(s) == "input" && strings.EqualFold(t, "hidden") {
		return true
	}
	style, _ := s.Attr("style")
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func isVisible(s *goquery.Selection) bool {
	if hiddenSelf(s) {
		return false
	}
	hidden := false
	s.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		hidden = hiddenSelf(parent)
		return !hidden
	})
	return !hidden
}

func isEditable(s *goquery.Selection) bool {
	if _, ok := s.Attr("disabled"); ok {
		return false
	}
	if _, ok := s.Attr("readonly"); ok {
		return false
	}
	switch goquery.NodeName(s) {
	case "textarea":
		return true
	case "input":
		t, _ := s.Attr("type")
		switch strings.ToLower(t) {
		case "button", "submit", "reset", "checkbox", "radio", "file", "image", "hidden":
			return false
		}
		return true
	}
	ce, ok := s.Attr("contenteditable")
	return ok && ce != "false"
}

// collectText - appends the trimmed text nodes of visible descendants
func collectText(s *goquery.Selection, texts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				*texts = append(*texts, t)
			}
			return
		case "#comment":
			return
		}
		if hiddenSelf(c) {
			return
		}
		collectText(c, texts)
	})
}
