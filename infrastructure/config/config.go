package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ui_harness/domain/entities"

	"github.com/joho/godotenv"
)

// Environment variables recognised by Load
const (
	EnvBaseURL        = "HARNESS_BASE_URL"
	EnvDefaultTimeout = "HARNESS_DEFAULT_TIMEOUT_MS"
	EnvPollInterval   = "HARNESS_POLL_INTERVAL_MS"
	EnvDriver         = "HARNESS_DRIVER"
	EnvHeadless       = "HARNESS_HEADLESS"
	EnvReportDir      = "HARNESS_REPORT_DIR"
	EnvParallelism    = "HARNESS_PARALLELISM"
)

// Load reads the optional env files (".env" when none are given), then the
// HARNESS_* variables on top of the defaults. Variables already set in the
// process environment win over the files.
func Load(envFiles ...string) (entities.Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return entities.Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only
func FromEnv() (entities.Config, error) {
	cfg := entities.DefaultConfig()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv(EnvReportDir); v != "" {
		cfg.ReportDir = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		driver, err := ParseDriver(v)
		if err != nil {
			return cfg, err
		}
		cfg.Driver = driver
	}

	var err error
	if cfg.DefaultTimeout, err = millis(EnvDefaultTimeout, cfg.DefaultTimeout); err != nil {
		return cfg, err
	}
	if cfg.PollInterval, err = millis(EnvPollInterval, cfg.PollInterval); err != nil {
		return cfg, err
	}

	if v := os.Getenv(EnvHeadless); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvHeadless, err)
		}
		cfg.Headless = headless
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid %s: %q", EnvParallelism, v)
		}
		cfg.Parallelism = n
	}

	return cfg, nil
}

// ParseDriver - maps a driver name onto a known backend
func ParseDriver(name string) (entities.DriverKind, error) {
	switch d := entities.DriverKind(strings.ToLower(strings.TrimSpace(name))); d {
	case entities.DriverPlaywright, entities.DriverRod, entities.DriverSelenium, entities.DriverMemory:
		return d, nil
	}
	return "", fmt.Errorf("unknown driver %q (want playwright, rod, selenium or memory)", name)
}

func millis(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def, fmt.Errorf("invalid %s: %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
