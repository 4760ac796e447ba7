package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ui_harness/application/harness"
	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Runner executes scenarios. Each scenario gets its own page, which is closed
// on every exit path.
type Runner struct {
	driver   interfaces.Driver
	cfg      entities.Config
	executor *harness.Executor
	asserter *harness.Asserter
	redactor interfaces.Redactor
	store    interfaces.ReportStore
	logger   *logrus.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithReportStore - persists every finished report
func WithReportStore(store interfaces.ReportStore) Option {
	return func(r *Runner) { r.store = store }
}

// WithRedactor - masks sensitive step values in logs
func WithRedactor(redactor interfaces.Redactor) Option {
	return func(r *Runner) { r.redactor = redactor }
}

// NewRunner - creates new runner instance
func NewRunner(driver interfaces.Driver, cfg entities.Config, logger *logrus.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Runner{
		driver:   driver,
		cfg:      cfg,
		executor: harness.NewExecutor(cfg, logger),
		asserter: harness.NewAsserter(cfg, logger),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run - executes the scenario's steps in order. The first failing step halts
// the scenario; later steps are never attempted. Errors never escape: they end
// up in the report.
func (r *Runner) Run(ctx context.Context, scenario entities.Scenario) *entities.Report {
	report := &entities.Report{
		RunID:     uuid.NewString(),
		Name:      scenario.Name,
		Outcome:   entities.OutcomePending,
		Steps:     make([]entities.StepReport, 0, len(scenario.Steps)),
		StartedAt: time.Now(),
	}
	log := r.logger.WithFields(logrus.Fields{"scenario": scenario.Name, "run_id": report.RunID})
	defer r.finish(report, log)

	if err := Validate(scenario); err != nil {
		r.fail(report, -1, "validate scenario", err)
		return report
	}

	page, err := r.driver.NewPage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			report.Outcome = entities.OutcomeCancelled
			return report
		}
		r.fail(report, -1, "open page", err)
		return report
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.WithError(err).Warn("failed to close page")
		}
	}()
	report.Outcome = entities.OutcomeRunning

	for i, step := range scenario.Steps {
		if ctx.Err() != nil {
			report.Outcome = entities.OutcomeCancelled
			return report
		}

		stepLog := log.WithFields(logrus.Fields{"step": i, "operation": step.Operation})
		stepLog.WithField("value", r.describe(step)).Info(step.Description)

		start := time.Now()
		err := r.execute(ctx, page, step)
		sr := entities.StepReport{
			Index:       i,
			Description: step.Description,
			Operation:   step.Operation,
			Outcome:     entities.OutcomePassed,
			DurationMs:  time.Since(start).Milliseconds(),
		}

		if err == nil {
			report.Steps = append(report.Steps, sr)
			continue
		}

		sr.Diagnostic = err.Error()
		if errors.Is(err, entities.ErrCancelled) || ctx.Err() != nil {
			stepLog.Warn("scenario cancelled")
			sr.Outcome = entities.OutcomeCancelled
			report.Steps = append(report.Steps, sr)
			report.Outcome = entities.OutcomeCancelled
			return report
		}

		stepLog.WithError(err).Error("step failed")
		sr.Outcome = entities.OutcomeFailed
		report.Steps = append(report.Steps, sr)
		r.fail(report, i, step.Description, err)
		return report
	}

	report.Outcome = entities.OutcomePassed
	return report
}

// RunAll - runs scenarios concurrently, each on its own page, at most
// cfg.Parallelism at a time. Reports keep the order of scenarios.
func (r *Runner) RunAll(ctx context.Context, scenarios []entities.Scenario) []*entities.Report {
	reports := make([]*entities.Report, len(scenarios))

	limit := r.cfg.Parallelism
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			reports[i] = r.Run(gctx, scenario)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// execute - runs a single step against the page
func (r *Runner) execute(ctx context.Context, page interfaces.Page, step entities.Step) error {
	switch step.Operation {
	case entities.OpNavigate:
		url := harness.ResolveURL(r.cfg.BaseURL, step.Value)
		if err := page.Navigate(ctx, url); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %w", entities.ErrCancelled, ctx.Err())
			}
			return &entities.NavigationError{URL: url, Err: err}
		}
		return nil

	case entities.OpFill:
		loc := harness.Locate(page, step.Target)
		if step.Timeout > 0 {
			if err := r.executor.WaitVisible(ctx, loc, step.Timeout); err != nil {
				return err
			}
		}
		return r.executor.Fill(ctx, loc, step.Value)

	case entities.OpClick:
		loc := harness.Locate(page, step.Target)
		if step.Timeout > 0 {
			if err := r.executor.WaitVisible(ctx, loc, step.Timeout); err != nil {
				return err
			}
		}
		return r.executor.Click(ctx, loc)

	case entities.OpWaitVisible:
		return r.executor.WaitVisible(ctx, harness.Locate(page, step.Target), step.Timeout)

	case entities.OpAssertVisible:
		return r.asserter.AssertVisible(ctx, harness.Locate(page, step.Target), step.Timeout)

	case entities.OpAssertURL:
		pattern, err := harness.ParseURLPattern(step.Expected, r.cfg.BaseURL)
		if err != nil {
			return err
		}
		return r.asserter.AssertURL(ctx, page, pattern, step.Timeout)

	case entities.OpAssertText:
		return r.asserter.AssertText(ctx, page, step.Expected, step.Timeout)

	default:
		return fmt.Errorf("unknown operation: %s", step.Operation)
	}
}

func (r *Runner) fail(report *entities.Report, index int, description string, err error) {
	report.Outcome = entities.OutcomeFailed
	report.Failure = &entities.Failure{
		StepIndex:   index,
		Description: description,
		Error:       err.Error(),
	}
}

func (r *Runner) finish(report *entities.Report, log *logrus.Entry) {
	report.DurationMs = time.Since(report.StartedAt).Milliseconds()
	if !report.Outcome.IsTerminal() {
		log.WithField("outcome", report.Outcome).Error("scenario ended without a final outcome")
		report.Outcome = entities.OutcomeFailed
	}

	entry := log.WithFields(logrus.Fields{"outcome": report.Outcome, "duration_ms": report.DurationMs})
	if report.Outcome == entities.OutcomePassed {
		entry.Info("scenario finished")
	} else {
		entry.Warn("scenario finished")
	}

	if r.store == nil {
		return
	}
	if err := r.store.Save(report); err != nil {
		log.WithError(err).Warn("failed to save report")
	}
}

// describe - the step value as it may appear in logs
func (r *Runner) describe(step entities.Step) string {
	if r.redactor != nil {
		return r.redactor.Describe(step)
	}
	// without a redactor no typed value is trusted
	if step.Operation == entities.OpFill {
		return "<redacted>"
	}
	if step.Operation.IsAction() {
		return step.Value
	}
	return step.Expected
}
