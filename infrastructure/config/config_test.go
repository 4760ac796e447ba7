package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ui_harness/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	EnvBaseURL, EnvDefaultTimeout, EnvPollInterval, EnvDriver,
	EnvHeadless, EnvReportDir, EnvParallelism,
}

// clearEnv - blanks every harness variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultConfig(), cfg)
	assert.Equal(t, 5*time.Second, cfg.DefaultTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://staging.shop.test/")
	t.Setenv(EnvDefaultTimeout, "2500")
	t.Setenv(EnvPollInterval, "25")
	t.Setenv(EnvDriver, " Rod ")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvReportDir, "out/reports")
	t.Setenv(EnvParallelism, "4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.shop.test", cfg.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.DefaultTimeout)
	assert.Equal(t, 25*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, entities.DriverRod, cfg.Driver)
	assert.False(t, cfg.Headless)
	assert.Equal(t, "out/reports", cfg.ReportDir)
	assert.Equal(t, 4, cfg.Parallelism)
}

func TestFromEnv_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvDefaultTimeout, "fast"},
		{EnvDefaultTimeout, "0"},
		{EnvPollInterval, "-5"},
		{EnvDriver, "netscape"},
		{EnvHeadless, "maybe"},
		{EnvParallelism, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseDriver(t *testing.T) {
	for _, name := range []string{"playwright", "rod", "selenium", "memory"} {
		d, err := ParseDriver(name)
		require.NoError(t, err)
		assert.Equal(t, entities.DriverKind(name), d)
	}

	_, err := ParseDriver("")
	assert.ErrorContains(t, err, "unknown driver")
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already present
	os.Unsetenv(EnvBaseURL)
	os.Unsetenv(EnvDefaultTimeout)
	t.Setenv(EnvDriver, "memory")

	path := filepath.Join(t.TempDir(), "harness.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"HARNESS_BASE_URL=https://from-file.test\nHARNESS_DEFAULT_TIMEOUT_MS=750\nHARNESS_DRIVER=selenium\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv(EnvBaseURL)
		os.Unsetenv(EnvDefaultTimeout)
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.test", cfg.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.DefaultTimeout)
	assert.Equal(t, entities.DriverMemory, cfg.Driver)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultConfig(), cfg)
}
