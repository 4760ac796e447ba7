package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ui_harness/application/runner"
	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"
	"ui_harness/infrastructure/browser"
	"ui_harness/infrastructure/config"
	"ui_harness/infrastructure/scenariofile"
	"ui_harness/infrastructure/security"
	"ui_harness/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrScenariosFailed is returned when at least one scenario did not pass
var ErrScenariosFailed = errors.New("one or more scenarios did not pass")

type TerminalInterface struct {
	root   *cobra.Command
	logger *logrus.Logger
	fs     afero.Fs
	out    io.Writer

	envFile   string
	driver    string
	baseURL   string
	reportDir string
	verbose   bool

	// newDriver is swapped in tests
	newDriver func(entities.Config, *logrus.Logger) (interfaces.Driver, error)
}

func NewTerminalInterface() *TerminalInterface {
	// Setup logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	t := &TerminalInterface{
		logger:    logger,
		fs:        afero.NewOsFs(),
		out:       os.Stdout,
		newDriver: browser.NewDriver,
	}
	t.root = t.buildCommands()
	return t
}

func (t *TerminalInterface) buildCommands() *cobra.Command {
	root := &cobra.Command{
		Use:           "ui_harness",
		Short:         "Run browser scenarios: locate, act, assert",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if t.verbose {
				t.logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&t.envFile, "env", "", "env file to load (default .env, optional)")
	root.PersistentFlags().StringVar(&t.driver, "driver", "", "browser backend: playwright, rod, selenium or memory")
	root.PersistentFlags().StringVar(&t.baseURL, "base-url", "", "base URL for relative navigation")
	root.PersistentFlags().StringVar(&t.reportDir, "report-dir", "", "directory to write JSON reports to")
	root.PersistentFlags().BoolVarP(&t.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenarios from YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := scenariofile.Load(t.fs, args...)
			if err != nil {
				return err
			}
			for _, s := range scenarios {
				if err := runner.Validate(s); err != nil {
					return fmt.Errorf("invalid scenario %q: %w", s.Name, err)
				}
			}
			return t.run(cmd.Context(), scenarios)
		},
	})

	var username, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Run the built-in saucedemo login scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.run(cmd.Context(), []entities.Scenario{runner.SauceDemoLogin(username, password)})
		},
	}
	login.Flags().StringVar(&username, "username", "standard_user", "user to log in as")
	login.Flags().StringVar(&password, "password", "secret_sauce", "password of the user")
	root.AddCommand(login)

	return root
}

// loadConfig - env file and HARNESS_* variables, then command line flags on top
func (t *TerminalInterface) loadConfig() (entities.Config, error) {
	var files []string
	if t.envFile != "" {
		files = append(files, t.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return cfg, err
	}

	if t.driver != "" {
		if cfg.Driver, err = config.ParseDriver(t.driver); err != nil {
			return cfg, err
		}
	}
	if t.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(t.baseURL, "/")
	}
	if t.reportDir != "" {
		cfg.ReportDir = t.reportDir
	}
	return cfg, nil
}

func (t *TerminalInterface) run(ctx context.Context, scenarios []entities.Scenario) error {
	cfg, err := t.loadConfig()
	if err != nil {
		return err
	}

	driver, err := t.newDriver(cfg, t.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			t.logger.WithError(err).Warn("failed to close browser")
		}
	}()

	opts := []runner.Option{runner.WithRedactor(security.NewRedactor(t.logger))}
	if cfg.ReportDir != "" {
		store, err := storage.NewReportStore(t.fs, cfg.ReportDir)
		if err != nil {
			return err
		}
		opts = append(opts, runner.WithReportStore(store))
	}

	r := runner.NewRunner(driver, cfg, t.logger, opts...)
	reports := r.RunAll(ctx, scenarios)

	failed := false
	for _, report := range reports {
		t.printReport(report)
		if !report.Passed() {
			failed = true
		}
	}
	if failed {
		return ErrScenariosFailed
	}
	return nil
}

func (t *TerminalInterface) printReport(report *entities.Report) {
	fmt.Fprintf(t.out, "\n%s  [%s]  %dms\n", report.Name, strings.ToUpper(string(report.Outcome)), report.DurationMs)
	for _, step := range report.Steps {
		fmt.Fprintf(t.out, "  %2d. %-8s %s\n", step.Index+1, step.Outcome, step.Description)
		if step.Diagnostic != "" {
			fmt.Fprintf(t.out, "      %s\n", step.Diagnostic)
		}
	}
	if report.Failure != nil && report.Failure.StepIndex < 0 {
		fmt.Fprintf(t.out, "  %s: %s\n", report.Failure.Description, report.Failure.Error)
	}
}

// Run - executes the command line; SIGINT/SIGTERM cancel running scenarios
func (t *TerminalInterface) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t.root.SetArgs(args)
	return t.root.ExecuteContext(ctx)
}
