package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const defaultChromeDriverPort = 9515

type seleniumDriver struct {
	service      *selenium.Service
	port         int
	chromeBinary string
	headless     bool
	logger       *logrus.Logger
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary() string {
	if path := os.Getenv("CHROME_BINARY_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// NewSeleniumDriver - starts a ChromeDriver service; each page is its own WebDriver session
func NewSeleniumDriver(cfg entities.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}

	port := defaultChromeDriverPort
	if v := os.Getenv("CHROMEDRIVER_PORT"); v != "" {
		if port, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid CHROMEDRIVER_PORT: %w", err)
		}
	}

	logger.Infof("Using ChromeDriver at: %s (port %d)", driverPath, port)

	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	return &seleniumDriver{
		service:      service,
		port:         port,
		chromeBinary: findChromeBinary(),
		headless:     cfg.Headless,
		logger:       logger,
	}, nil
}

func (d *seleniumDriver) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--window-size=1280,720",
		},
	}
	if d.headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if d.chromeBinary != "" {
		chromeCaps.Path = d.chromeBinary
	}

	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", d.port))
	if err != nil {
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &seleniumPage{wd: wd, logger: d.logger}, nil
}

// Close - stops ChromeDriver service
func (d *seleniumDriver) Close() error {
	if d.service == nil {
		return nil
	}
	err := d.service.Stop()
	d.service = nil
	return err
}

type seleniumPage struct {
	wd     selenium.WebDriver
	logger *logrus.Logger

	quitOnce sync.Once
	quitErr  error
}

// Navigate - WebDriver has no cancellation; a cancelled ctx ends the session
func (p *seleniumPage) Navigate(ctx context.Context, url string) error {
	p.logger.Debugf("Navigating to: %s", url)
	return cancellable(ctx, p.abort, func() error {
		return p.wd.Get(url)
	})
}

// quit - ends the WebDriver session once, however many callers ask
func (p *seleniumPage) quit() error {
	p.quitOnce.Do(func() {
		p.quitErr = p.wd.Quit()
	})
	return p.quitErr
}

func (p *seleniumPage) abort() {
	if err := p.quit(); err != nil {
		p.logger.WithError(err).Warn("failed to abort webdriver session")
	}
}

func (p *seleniumPage) QueryElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	elements, err := p.wd.FindElements(selenium.ByCSSSelector, string(selector))
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, nil
	}
	return &seleniumElement{page: p, wd: p.wd, el: elements[0]}, nil
}

func (p *seleniumPage) URL(ctx context.Context) (string, error) {
	return p.wd.CurrentURL()
}

func (p *seleniumPage) VisibleText(ctx context.Context) (string, error) {
	result, err := p.wd.ExecuteScript("return ("+visibleTextJS+")();", nil)
	if err != nil {
		return "", err
	}
	text, _ := result.(string)
	return text, nil
}

// Close - ends the WebDriver session, which closes its browser window
func (p *seleniumPage) Close() error {
	return p.quit()
}

type seleniumElement struct {
	page *seleniumPage
	wd   selenium.WebDriver
	el   selenium.WebElement
}

func (e *seleniumElement) IsVisible(ctx context.Context) (bool, error) {
	return e.el.IsDisplayed()
}

func (e *seleniumElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.el.IsEnabled()
}

func (e *seleniumElement) IsEditable(ctx context.Context) (bool, error) {
	return e.evalBool(isEditableJS)
}

func (e *seleniumElement) IsObscured(ctx context.Context) (bool, error) {
	return e.evalBool(isObscuredJS)
}

func (e *seleniumElement) Fill(ctx context.Context, text string) error {
	return cancellable(ctx, e.page.abort, func() error {
		if err := e.el.Clear(); err != nil {
			return fmt.Errorf("failed to clear element: %w", err)
		}
		return e.el.SendKeys(text)
	})
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return cancellable(ctx, e.page.abort, e.el.Click)
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	text, err := e.el.Text()
	return strings.TrimSpace(text), err
}

func (e *seleniumElement) evalBool(fn string) (bool, error) {
	result, err := e.wd.ExecuteScript("return ("+fn+")(arguments[0]);", []interface{}{e.el})
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.New("unexpected script result")
	}
	return b, nil
}

var _ interfaces.Page = (*seleniumPage)(nil)
