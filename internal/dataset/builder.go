package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/ericz0u/IEMClassification/internal/config"
	"github.com/ericz0u/IEMClassification/internal/curvefile"
	"github.com/ericz0u/IEMClassification/internal/fileutil"
	"github.com/ericz0u/IEMClassification/internal/index"
	"github.com/ericz0u/IEMClassification/internal/logging"
	"github.com/ericz0u/IEMClassification/internal/signature"
	"github.com/ericz0u/IEMClassification/internal/textutil"
)

// Renderer draws one normalized curve to a PNG file.
type Renderer interface {
	Render(frequencies, normalized []float64, path string) error
}

// Recorder persists one classified curve into the results index.
type Recorder interface {
	RecordCurve(ctx context.Context, runID, fileName, device string, result signature.Result, bands []signature.Band) (*index.Record, error)
}

// Builder runs dataset builds against a configured input directory.
type Builder struct {
	cfg      *config.Config
	store    Recorder
	renderer Renderer
	logger   *slog.Logger
	sig      signature.Config
}

// Summary reports the outcome of one build run.
type Summary struct {
	RunID     string
	Processed int
	Skipped   int
	Failed    int
	ByLabel   map[signature.Label]int
	Elapsed   time.Duration
}

// New constructs a builder. The store may be nil when no index should
// be written (classify-only tooling).
func New(cfg *config.Config, store Recorder, renderer Renderer, logger *slog.Logger) (*Builder, error) {
	if cfg == nil {
		return nil, errors.New("dataset: config is required")
	}
	if renderer == nil {
		return nil, errors.New("dataset: renderer is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "dataset"),
		sig:      cfg.Signature(),
	}, nil
}

// EnsureLayout creates the output tree, including all label
// subdirectories, before any file is processed.
func (b *Builder) EnsureLayout() error {
	return b.cfg.EnsureDirectories()
}

// Run executes a full build over the input directory and returns a
// summary of what happened. Individual bad files are counted, not
// fatal; only structural problems (missing input directory, lock
// contention) abort the run.
func (b *Builder) Run(ctx context.Context) (Summary, error) {
	started := time.Now()

	if err := b.EnsureLayout(); err != nil {
		return Summary{}, err
	}

	lock := flock.New(b.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return Summary{}, errors.New("another build is already running against this output directory")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			b.logger.Warn("failed to release build lock", logging.Error(unlockErr))
		}
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, b.logger)

	files, err := curvefile.Discover(b.cfg.Paths.InputDir)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("build started",
		logging.String("input", b.cfg.Paths.InputDir),
		logging.Int("files", len(files)),
		logging.Int("workers", b.cfg.Analysis.Workers))

	summary := Summary{RunID: runID, ByLabel: make(map[signature.Label]int)}
	for oc := range b.process(ctx, logger, files) {
		switch {
		case oc.skipped:
			summary.Skipped++
		case oc.err != nil:
			summary.Failed++
		default:
			summary.Processed++
			summary.ByLabel[oc.label]++
		}
	}
	summary.Elapsed = time.Since(started)

	logger.Info("build finished",
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, ctx.Err()
}

type outcome struct {
	label   signature.Label
	skipped bool
	err     error
}

// process fans the file list out to the configured number of workers
// and streams outcomes back. Every worker only touches per-file state,
// so the resulting dataset is identical regardless of ordering.
func (b *Builder) process(ctx context.Context, logger *slog.Logger, files []string) <-chan outcome {
	workers := b.cfg.Analysis.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan string)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				outcomes <- b.processFile(ctx, logger, path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()
	return outcomes
}

func (b *Builder) processFile(ctx context.Context, logger *slog.Logger, path string) outcome {
	fileName := filepath.Base(path)
	fileLogger := logger.With(logging.String(logging.FieldFile, fileName))

	curve, err := curvefile.Load(path)
	if err != nil {
		if errors.Is(err, curvefile.ErrSkippable) {
			fileLogger.Debug("skipping input", logging.String("reason", err.Error()))
			return outcome{skipped: true}
		}
		fileLogger.Error("failed to read measurement", logging.Error(err))
		return outcome{err: err}
	}

	result, err := signature.Evaluate(curve, b.sig)
	if err != nil {
		fileLogger.Error("analysis failed", logging.Error(err))
		return outcome{err: err}
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	plotPath := filepath.Join(b.cfg.ImagesDir(), result.Label.String(), base+".png")
	if err := b.renderer.Render(curve.Frequencies, result.Normalized, plotPath); err != nil {
		fileLogger.Error("failed to render plot", logging.Error(err))
		return outcome{err: err}
	}

	archivePath := filepath.Join(b.cfg.CSVDir(), result.Label.String(), fileName)
	if err := fileutil.CopyFilePreserve(path, archivePath); err != nil {
		fileLogger.Error("failed to archive measurement", logging.Error(err))
		return outcome{err: err}
	}

	if b.store != nil {
		device := textutil.DisplayName(fileName)
		if _, err := b.store.RecordCurve(ctx, runIDFrom(ctx), fileName, device, result, b.sig.Bands); err != nil {
			fileLogger.Error("failed to index result", logging.Error(err))
			return outcome{err: err}
		}
	}

	fileLogger.Debug("classified measurement",
		logging.String(logging.FieldLabel, result.Label.String()),
		meanAttr("bass_db", result.Regions.Bass),
		meanAttr("mid_db", result.Regions.Mid),
		meanAttr("treble_db", result.Regions.Treble))
	return outcome{label: result.Label}
}

func runIDFrom(ctx context.Context) string {
	runID, _ := logging.RunIDFromContext(ctx)
	return runID
}

func meanAttr(key string, mean signature.Mean) logging.Attr {
	if !mean.Defined {
		return logging.String(key, "undefined")
	}
	return logging.Float64(key, mean.Value)
}
