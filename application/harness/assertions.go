package harness

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const maxObservedText = 120

// URLPattern matches a page URL either by regular expression or by prefix
type URLPattern struct {
	re     *regexp.Regexp
	prefix string
}

// MatchRegexp - creates a pattern matching URLs against re
func MatchRegexp(re *regexp.Regexp) URLPattern {
	return URLPattern{re: re}
}

// MatchPrefix - creates a pattern matching URLs starting with prefix
func MatchPrefix(prefix string) URLPattern {
	return URLPattern{prefix: prefix}
}

// ParseURLPattern - a value wrapped in slashes, like /.*\/inventory\.html$/, is
// a regular expression. Anything else is a prefix; prefixes without a scheme
// are resolved against baseURL.
func ParseURLPattern(value, baseURL string) (URLPattern, error) {
	if len(value) >= 2 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
		body := value[1 : len(value)-1]
		if body == "" {
			return URLPattern{}, fmt.Errorf("invalid url pattern %s: empty regular expression", value)
		}
		re, err := regexp.Compile(body)
		if err != nil {
			return URLPattern{}, fmt.Errorf("invalid url pattern %s: %w", value, err)
		}
		return MatchRegexp(re), nil
	}
	return MatchPrefix(ResolveURL(baseURL, value)), nil
}

// Match - checks url against the pattern
func (p URLPattern) Match(url string) bool {
	if p.re != nil {
		return p.re.MatchString(url)
	}
	return strings.HasPrefix(url, p.prefix)
}

func (p URLPattern) String() string {
	if p.re != nil {
		return "/" + p.re.String() + "/"
	}
	return p.prefix + "*"
}

// Asserter polls page state until an expectation holds
type Asserter struct {
	timeout  time.Duration
	interval time.Duration
	logger   *logrus.Logger
}

// NewAsserter - creates an asserter using the config's default timeout and poll interval
func NewAsserter(cfg entities.Config, logger *logrus.Logger) *Asserter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Asserter{
		timeout:  orDefault(cfg.DefaultTimeout, entities.DefaultTimeout),
		interval: orDefault(cfg.PollInterval, entities.DefaultPollInterval),
		logger:   logger,
	}
}

// AssertVisible - expects the element to become visible within timeout
func (a *Asserter) AssertVisible(ctx context.Context, loc *Locator, timeout time.Duration) error {
	condition := fmt.Sprintf("%q to be visible", loc.Selector())
	return a.assert(ctx, condition, timeout, loc.visible)
}

// AssertURL - expects the page URL to match pattern within timeout
func (a *Asserter) AssertURL(ctx context.Context, page interfaces.Page, pattern URLPattern, timeout time.Duration) error {
	condition := fmt.Sprintf("url to match %s", pattern)
	return a.assert(ctx, condition, timeout, func(ctx context.Context) (bool, string, error) {
		url, err := page.URL(ctx)
		if err != nil {
			return false, "", err
		}
		return pattern.Match(url), fmt.Sprintf("url %q", url), nil
	})
}

// AssertText - expects text to be present in the rendered page within timeout
func (a *Asserter) AssertText(ctx context.Context, page interfaces.Page, text string, timeout time.Duration) error {
	condition := fmt.Sprintf("text %q to be present", text)
	return a.assert(ctx, condition, timeout, func(ctx context.Context) (bool, string, error) {
		visible, err := page.VisibleText(ctx)
		if err != nil {
			return false, "", err
		}
		return strings.Contains(visible, text), fmt.Sprintf("page text %q", truncate(visible, maxObservedText)), nil
	})
}

func (a *Asserter) assert(ctx context.Context, condition string, timeout time.Duration, check Check) error {
	timeout = orDefault(timeout, a.timeout)
	start := time.Now()

	err := Poll(ctx, condition, timeout, a.interval, check)
	if err == nil {
		return nil
	}

	var timeoutErr *entities.TimeoutError
	if !errors.As(err, &timeoutErr) {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"condition": condition,
		"observed":  timeoutErr.LastObserved,
	}).Debug("assertion timed out")

	return &entities.AssertionError{
		Condition:    condition,
		LastObserved: timeoutErr.LastObserved,
		Elapsed:      time.Since(start),
		Err:          timeoutErr,
	}
}

// ResolveURL - joins a relative path onto baseURL. Absolute URLs pass through.
func ResolveURL(baseURL, target string) string {
	if strings.Contains(target, "://") || baseURL == "" {
		return target
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(target, "/")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
