package entities

import "time"

// DriverKind names a browser backend
type DriverKind string

const (
	DriverPlaywright DriverKind = "playwright"
	DriverRod        DriverKind = "rod"
	DriverSelenium   DriverKind = "selenium"
	DriverMemory     DriverKind = "memory"
)

const (
	DefaultBaseURL      = "https://www.saucedemo.com"
	DefaultTimeout      = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultParallelism  = 2
)

// Config holds harness settings shared by every scenario
type Config struct {
	BaseURL        string
	DefaultTimeout time.Duration
	PollInterval   time.Duration

	Driver      DriverKind
	Headless    bool
	ReportDir   string
	Parallelism int
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		DefaultTimeout: DefaultTimeout,
		PollInterval:   DefaultPollInterval,
		Driver:         DriverPlaywright,
		Headless:       true,
		Parallelism:    DefaultParallelism,
	}
}
