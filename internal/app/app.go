// Package app implements the application layer for handoff.
package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"go.trai.ch/handoff/internal/adapters/config"
	"go.trai.ch/handoff/internal/adapters/report"
	"go.trai.ch/handoff/internal/adapters/telemetry"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/handoff/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	pipeline  *pipeline.Pipeline
	logger    ports.Logger
	settings  config.Settings
	collector *telemetry.Collector
	store     ports.DigestStore
	stdout    io.Writer
	now       func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	pipe *pipeline.Pipeline,
	log ports.Logger,
	settings config.Settings,
	collector *telemetry.Collector,
	store ports.DigestStore,
) *App {
	return &App{
		loader:    loader,
		pipeline:  pipe,
		logger:    log,
		settings:  settings,
		collector: collector,
		store:     store,
		stdout:    os.Stdout,
		now:       time.Now,
	}
}

// WithOutput sets the writer the report is rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Manifest overrides HANDOFF_MANIFEST when not empty.
	Manifest string
	// Workers overrides HANDOFF_WORKERS when positive.
	Workers int
	// Format is the report format, "text" or "json".
	Format string
	// Only restricts the encoding phase to these definitions.
	Only []domain.DefinitionID
	// Trace logs a timing line for every span after the run.
	Trace bool
}

// Run loads the manifest, runs both phases and renders the report.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	renderer, err := report.New(opts.Format)
	if err != nil {
		return err
	}

	m, err := a.loader.Load(a.manifestPath(opts.Manifest))
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	workers := a.settings.WorkerCount()
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	a.collector.Reset()
	shutdown, err := telemetry.Setup(ctx, a.collector, a.settings.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	result, err := a.pipeline.Run(ctx, m, pipeline.Options{Workers: workers, Only: opts.Only})
	if opts.Trace {
		a.logSpans()
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPipelineFailed.Error()), "session", m.Session)
	}

	if err := a.recordDigests(result); err != nil {
		return err
	}

	return renderer.Render(a.stdout, result)
}

// Validate loads the manifest at path and reports what it declares.
func (a *App) Validate(_ context.Context, path string) error {
	m, err := a.loader.Load(a.manifestPath(path))
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	analyzable := len(m.Analyzable())
	a.logger.Info(fmt.Sprintf("session %s: %d procedures, %d with a body, %d specification-only",
		m.Session, len(m.Procedures), analyzable, len(m.Procedures)-analyzable))
	return nil
}

func (a *App) manifestPath(override string) string {
	if override != "" {
		return override
	}
	if a.settings.Manifest != "" {
		return a.settings.Manifest
	}
	return domain.ManifestFileName
}

// recordDigests marks the encodings whose digest moved since the last run and
// saves the new digests.
func (a *App) recordDigests(result *domain.RunResult) error {
	now := a.now()
	records := make([]domain.DigestRecord, 0, len(result.Encodings))
	for _, enc := range result.Encodings {
		prev, err := a.store.Get(result.Session, enc.Def)
		if err != nil {
			return err
		}
		if prev != nil && prev.Digest != enc.Digest {
			result.Changed = append(result.Changed, enc.Def)
		}
		records = append(records, domain.DigestRecord{
			Session:   result.Session,
			SessionID: result.SessionID,
			Def:       enc.Def,
			Digest:    enc.Digest,
			Timestamp: now,
		})
	}

	if err := a.store.Put(records); err != nil {
		return zerr.Wrap(err, "failed to record digests")
	}
	if len(result.Changed) > 0 {
		a.logger.Info(fmt.Sprintf("%d digest(s) changed since the last run: %v", len(result.Changed), result.Changed))
	}
	return nil
}

func (a *App) logSpans() {
	for _, s := range a.collector.Spans() {
		parts := make([]string, 0, len(s.Attributes))
		for _, k := range slices.Sorted(maps.Keys(s.Attributes)) {
			parts = append(parts, k+"="+s.Attributes[k])
		}

		line := fmt.Sprintf("%-8s %-16s %s", s.Kind, s.Name, s.Duration.Round(time.Microsecond))
		if len(parts) > 0 {
			line += " " + strings.Join(parts, " ")
		}
		a.logger.Info(line)
	}
}
