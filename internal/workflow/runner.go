package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"collate/internal/align"
	"collate/internal/config"
	"collate/internal/ingest"
	"collate/internal/logging"
	"collate/internal/patch"
	"collate/internal/review"
	"collate/internal/services"
	"collate/internal/similarity"
	"collate/internal/transcript"
	"collate/internal/variant"
	"collate/internal/verify"
)

// ErrBatchLocked reports that another batch holds the run lock.
var ErrBatchLocked = errors.New("another collate batch is already running")

// Runner executes batch stages over the configured folders.
type Runner struct {
	cfg    *config.Config
	assets *variant.Assets
	docs   *transcript.Store
	store  *review.Store
	sink   Sink
	logger *slog.Logger

	displayMu sync.Mutex
	display   io.Writer

	refCleaner  *transcript.Cleaner
	candCleaner *transcript.Cleaner
	aligner     *align.Aligner
	patcher     *patch.Patcher
	verifier    *verify.Verifier
	converter   *ingest.Converter
}

// Option configures optional Runner behavior.
type Option func(*runnerOptions)

type runnerOptions struct {
	store   *review.Store
	logger  *slog.Logger
	display io.Writer
	sinks   []Sink
}

// WithStore persists runs, diagnostics, review flags, tallies and digests.
func WithStore(store *review.Store) Option {
	return func(o *runnerOptions) {
		o.store = store
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *runnerOptions) {
		o.logger = logger
	}
}

// WithDisplay sets where side-by-side dumps of unresolved documents go when
// align.display is enabled.
func WithDisplay(w io.Writer) Option {
	return func(o *runnerOptions) {
		o.display = w
	}
}

// WithSink adds a diagnostic sink next to the log and store sinks.
func WithSink(sink Sink) Option {
	return func(o *runnerOptions) {
		o.sinks = append(o.sinks, sink)
	}
}

// NewRunner wires the reconciliation components over the loaded tables.
func NewRunner(cfg *config.Config, assets *variant.Assets, opts ...Option) (*Runner, error) {
	if cfg == nil || assets == nil {
		return nil, errors.New("runner requires config and assets")
	}
	options := &runnerOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "workflow")

	sinks := MultiSink{NewLogSink(logger)}
	if options.store != nil {
		sinks = append(sinks, options.store)
	}
	sinks = append(sinks, options.sinks...)

	return &Runner{
		cfg:         cfg,
		assets:      assets,
		docs:        transcript.NewStore(cfg.Paths.DataDir),
		store:       options.store,
		sink:        sinks,
		logger:      logger,
		display:     options.display,
		refCleaner:  transcript.NewCleaner(cfg.Align.Noise),
		candCleaner: transcript.NewCleaner(cfg.Align.Noise, transcript.WithMapper(assets.CharMap)),
		aligner:     align.New(similarity.NewScorer(assets.Oracle), assets.Catalog, align.WithNoise(cfg.Align.Noise)),
		patcher:     patch.New(),
		verifier:    verify.New(assets.Catalog, cfg.Verify.IgnoreCatalog),
		converter:   ingest.New(assets.CharMap),
	}, nil
}

// Documents exposes the folder store the runner reads and writes.
func (r *Runner) Documents() *transcript.Store {
	return r.docs
}

// Summary reports the outcome of a batch.
type Summary struct {
	RunID     string
	Stage     Stage
	Processed int
	Written   int
	Skipped   int
	Failed    int
	// NeedsReview lists documents added to the manual-review list.
	NeedsReview []string
	// Unresolved lists the documents that spent the error budget.
	Unresolved []string
	Halted     bool
	// Tally holds this run's unresolved variant counts (standardize only).
	Tally []variant.TallyEntry
}

// Stats converts the summary into the counters stored with the run.
func (s Summary) Stats() review.RunStats {
	return review.RunStats{
		Processed: s.Processed,
		Written:   s.Written,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		Halted:    s.Halted,
	}
}

type outcome int

const (
	outcomeWritten outcome = iota
	outcomeChecked
	outcomeSkipped
)

// batch carries the mutable state of one Run call.
type batch struct {
	*Runner
	runID  string
	stage  Stage
	budget *Budget
	tally  *variant.Tally
	logger *slog.Logger

	// tolerated holds backfill work keyed by document.
	tolerated map[string][]review.Entry

	mu      sync.Mutex
	summary Summary
}

// Run executes stage over names, or over every document of the stage's
// source folder when names is empty. The summary is returned even when the
// batch halts on an exhausted budget.
func (r *Runner) Run(ctx context.Context, stage Stage, names ...string) (Summary, error) {
	lock := flock.New(r.cfg.LockPath())
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Summary{}, err
	}
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, ErrBatchLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release batch lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithStage(ctx, string(stage))
	b := &batch{
		Runner: r,
		runID:  runID,
		stage:  stage,
		budget: NewBudget(r.cfg.Align.ErrorBudget),
		tally:  variant.NewTally(),
		logger: logging.WithContext(ctx, r.logger),
		summary: Summary{
			RunID: runID,
			Stage: stage,
		},
	}

	targets, err := b.targets(ctx, names)
	if err != nil {
		return Summary{}, err
	}
	if r.store != nil {
		if err := r.store.BeginRun(ctx, runID, string(stage)); err != nil {
			return Summary{}, err
		}
	}
	b.logger.Info("batch started",
		logging.Int("documents", len(targets)),
		logging.Int("workers", r.workers()),
		logging.Int("error_budget", b.budget.Limit()),
	)

	runErr := b.runAll(ctx, targets)

	if stage == StageStandardize {
		b.summary.Tally = b.tally.Entries()
		if r.store != nil {
			if err := r.store.AddTally(ctx, b.summary.Tally); err != nil {
				runErr = errors.Join(runErr, err)
			}
		}
	}
	sort.Strings(b.summary.NeedsReview)
	if r.store != nil {
		if err := r.store.FinishRun(context.WithoutCancel(ctx), runID, b.summary.Stats()); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	b.logger.Info("batch finished",
		logging.Int("processed", b.summary.Processed),
		logging.Int("written", b.summary.Written),
		logging.Int("skipped", b.summary.Skipped),
		logging.Int("failed", b.summary.Failed),
		logging.Int("needs_review", len(b.summary.NeedsReview)),
		logging.Bool("halted", b.summary.Halted),
	)
	return b.summary, runErr
}

func (r *Runner) workers() int {
	if r.cfg.Workflow.Workers < 1 {
		return 1
	}
	return r.cfg.Workflow.Workers
}

func (b *batch) runAll(ctx context.Context, targets []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())
	for _, name := range targets {
		if gctx.Err() != nil || b.budget.Exhausted() {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil || b.budget.Exhausted() {
				return nil
			}
			return b.process(gctx, name)
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// targets resolves the documents of the batch.
func (b *batch) targets(ctx context.Context, names []string) ([]string, error) {
	if b.stage == StageBackfill {
		return b.backfillTargets(ctx, names)
	}
	if len(names) > 0 {
		out := make([]string, 0, len(names))
		for _, name := range names {
			if name = strings.TrimSuffix(strings.TrimSpace(name), ".txt"); name != "" {
				out = append(out, name)
			}
		}
		return out, nil
	}

	listed, err := b.docs.List(b.stage.source(b.cfg.Folders))
	if err != nil {
		return nil, err
	}
	if !b.stage.skipsFinished() || b.cfg.Folders.Finished == "" {
		return listed, nil
	}
	finished, err := b.docs.List(b.cfg.Folders.Finished)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(finished))
	for _, name := range finished {
		done[name] = struct{}{}
	}
	out := listed[:0]
	for _, name := range listed {
		if _, ok := done[name]; ok {
			b.summary.Skipped++
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// process runs one document. Only a halting condition is returned; document
// failures are recorded and counted.
func (b *batch) process(ctx context.Context, name string) error {
	ctx = services.WithDocument(ctx, name)
	logger := logging.WithContext(ctx, b.Runner.logger)

	result, err := b.handle(ctx, name)

	b.mu.Lock()
	b.summary.Processed++
	b.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return b.fail(ctx, logger, name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch result {
	case outcomeWritten:
		b.summary.Written++
		logger.Debug("document written")
	case outcomeSkipped:
		b.summary.Skipped++
		logger.Debug("document unchanged; skipped")
	}
	return nil
}

func (b *batch) handle(ctx context.Context, name string) (outcome, error) {
	switch b.stage {
	case StageIngest:
		return b.ingest(ctx, name)
	case StageStandardize:
		return b.standardize(ctx, name)
	case StageReconcile:
		return b.reconcileStage(ctx, name)
	case StagePatch:
		return b.patchStage(ctx, name)
	case StageVerify:
		return b.verifyStage(ctx, name)
	case StageRun:
		return b.runPipeline(ctx, name)
	case StageBackfill:
		return b.backfill(ctx, name)
	default:
		return outcomeSkipped, fmt.Errorf("unknown stage %q", b.stage)
	}
}

func (b *batch) fail(ctx context.Context, logger *slog.Logger, name string, err error) error {
	code, _ := services.CodeOf(err)
	logger.Warn("document failed", logging.Code(code), logging.Error(err))

	var diagnosed *diagnosedError
	if !errors.As(err, &diagnosed) {
		b.record(ctx, review.Entry{Document: name, Code: code, Detail: err.Error()})
	}

	b.mu.Lock()
	b.summary.Failed++
	b.mu.Unlock()

	surfaced := true
	var halt error
	if errors.Is(err, services.ErrAlignmentUnresolved) {
		var exhausted bool
		surfaced, exhausted = b.budget.Spend()
		if surfaced {
			b.mu.Lock()
			b.summary.Unresolved = append(b.summary.Unresolved, name)
			b.mu.Unlock()
		}
		if exhausted {
			b.mu.Lock()
			b.summary.Halted = true
			b.mu.Unlock()
			halt = services.Wrap(services.ErrBudgetExhausted, string(b.stage), "budget",
				fmt.Sprintf("%d unresolved documents", b.budget.Limit()), nil)
		}
	}
	if surfaced && services.NeedsReview(err) {
		b.flag(ctx, name, code, err)
	}
	return halt
}

func (b *batch) flag(ctx context.Context, name string, code services.Code, err error) {
	b.mu.Lock()
	b.summary.NeedsReview = append(b.summary.NeedsReview, name)
	b.mu.Unlock()
	if b.store == nil {
		return
	}
	flag := review.Flag{Document: name, Stage: string(b.stage), Code: code, Reason: err.Error(), RunID: b.runID}
	if ferr := b.store.FlagForReview(context.WithoutCancel(ctx), flag); ferr != nil {
		b.logger.Error("failed to flag document for review", logging.Document(name), logging.Error(ferr))
	}
}

// record stamps run and stage onto entry and forwards it to the sink.
func (b *batch) record(ctx context.Context, entry review.Entry) {
	entry.RunID = b.runID
	entry.Stage = string(b.stage)
	if err := b.sink.Record(context.WithoutCancel(ctx), entry); err != nil {
		b.logger.Error("failed to record diagnostic", logging.Code(entry.Code), logging.Error(err))
	}
}

// diagnosedError marks a failure whose diagnostics were already recorded.
type diagnosedError struct {
	err error
}

func (e *diagnosedError) Error() string { return e.err.Error() }

func (e *diagnosedError) Unwrap() error { return e.err }

func diagnosed(err error) error {
	if err == nil {
		return nil
	}
	return &diagnosedError{err: err}
}
