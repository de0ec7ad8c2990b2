// Package pipeline drives the two phases of a session: analysis stores one
// artifact per definition, encoding retrieves and encodes it.
package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Phase names used in spans and error metadata.
const (
	PhaseAnalysis = "analysis"
	PhaseEncoding = "encoding"
)

// Options controls a single run.
type Options struct {
	// Workers is the number of workers. Zero or less means one per CPU.
	Workers int
	// Only restricts the encoding phase to these definitions, in this order.
	// Empty means every stored definition.
	Only []domain.DefinitionID
}

// Pipeline runs the analysis and encoding phases over a manifest.
type Pipeline struct {
	analyzer ports.Analyzer
	encoder  ports.Encoder
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewPipeline creates a new Pipeline with the given dependencies.
func NewPipeline(
	analyzer ports.Analyzer,
	encoder ports.Encoder,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		analyzer: analyzer,
		encoder:  encoder,
		tracer:   tracer,
		logger:   logger,
	}
}

// worker is the per-goroutine context of a run. Its stash is touched only by
// the goroutine currently running the worker.
type worker struct {
	name      string
	stash     *handoff.Stash
	procs     []domain.Procedure
	requested []domain.DefinitionID
	encodings []domain.Encoding
}

// Run analyzes every procedure of m with a body, then encodes the stored
// artifacts. A cache contract violation in either phase aborts the run with
// domain.ErrPhaseAborted.
func (p *Pipeline) Run(ctx context.Context, m *domain.Manifest, opts Options) (*domain.RunResult, error) {
	count := opts.Workers
	if count <= 0 {
		count = runtime.NumCPU()
	}

	session := domain.NewSession(m.Session)
	defer session.Close()

	ctx, span := p.tracer.Start(ctx, "run "+m.Session, ports.WithKind("run"))
	defer span.End()
	span.SetAttribute("workers", count)
	span.SetAttribute("scope_id", session.ID())

	workers, skipped := plan(m, count, opts.Only)
	names := procedureNames(m)

	err := p.runPhase(ctx, PhaseAnalysis, workers, func(ctx context.Context, w *worker, s ports.Span) error {
		for _, proc := range w.procs {
			if err := ctx.Err(); err != nil {
				return err
			}
			art, err := p.analyzer.Analyze(ctx, session, proc)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrAnalysisFailed.Error()), "def_id", proc.ID.String())
			}
			w.stash.Store(session, proc.ID, art)
		}
		s.SetAttribute("stored", w.stash.Len())
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	err = p.runPhase(ctx, PhaseEncoding, workers, func(ctx context.Context, w *worker, s ports.Span) error {
		scope := session.Enter("encode/" + w.name)
		defer scope.Close()
		s.SetAttribute("scope_id", scope.ID())

		for i, def := range w.requested {
			if err := ctx.Err(); err != nil {
				return err
			}
			art := w.stash.Retrieve(scope, def)
			enc, err := p.encoder.Encode(ctx, art)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrEncodingFailed.Error()), "def_id", def.String())
			}
			enc.Name = names[def]
			enc.Worker = w.name
			w.encodings = append(w.encodings, enc)
			s.SetAttribute("retrieved", i+1)
		}
		return nil
	})

	leftover := p.reportLeftovers(workers)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &domain.RunResult{
		Session:   m.Session,
		SessionID: session.ID(),
		Workers:   count,
		Skipped:   skipped,
		Leftover:  leftover,
	}
	for _, w := range workers {
		result.Encodings = append(result.Encodings, w.encodings...)
	}
	slices.SortFunc(result.Encodings, func(a, b domain.Encoding) int {
		return cmp.Compare(a.Def, b.Def)
	})
	span.SetAttribute("encoded", len(result.Encodings))

	return result, nil
}

// runPhase runs fn for every worker with work in its own goroutine and waits
// for all of them. The wait is the barrier between phases.
func (p *Pipeline) runPhase(
	ctx context.Context,
	phase string,
	workers []*worker,
	fn func(context.Context, *worker, ports.Span) error,
) error {
	ctx, span := p.tracer.Start(ctx, phase, ports.WithKind("phase"))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		if len(w.procs) == 0 && len(w.requested) == 0 {
			continue
		}
		g.Go(func() (err error) {
			wctx, ws := p.tracer.Start(ctx, phase+" "+w.name, ports.WithKind("worker"))
			defer ws.End()
			defer func() {
				if err != nil {
					ws.RecordError(err)
				}
			}()
			defer recoverViolation(&err, phase, w.name)

			ws.SetAttribute("worker", w.name)
			return fn(wctx, w, ws)
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// recoverViolation converts a *handoff.Violation panic into an error stored
// in *err. Any other panic is re-raised.
func recoverViolation(err *error, phase, worker string) {
	r := recover()
	if r == nil {
		return
	}
	v, ok := handoff.AsViolation(r)
	if !ok {
		panic(r)
	}

	e := zerr.Wrap(v, domain.ErrPhaseAborted.Error())
	e = zerr.With(e, "phase", phase)
	e = zerr.With(e, "worker", worker)
	*err = zerr.With(e, "def_id", v.Def.String())
}

func (p *Pipeline) reportLeftovers(workers []*worker) []domain.DefinitionID {
	var leftover []domain.DefinitionID
	for _, w := range workers {
		pending := w.stash.Pending()
		if len(pending) == 0 {
			continue
		}
		p.logger.Warn(fmt.Sprintf("worker %s: %d artifact(s) never retrieved: %v", w.name, len(pending), pending))
		leftover = append(leftover, pending...)
	}
	slices.Sort(leftover)
	return leftover
}

// plan shards the procedures of m over count workers. Specification-only
// procedures are returned as skipped.
func plan(m *domain.Manifest, count int, only []domain.DefinitionID) ([]*worker, []domain.DefinitionID) {
	workers := make([]*worker, count)
	for i := range workers {
		name := fmt.Sprintf("w%d", i)
		workers[i] = &worker{name: name, stash: handoff.New(name)}
	}

	var skipped []domain.DefinitionID
	for _, proc := range m.Procedures {
		if proc.SpecOnly {
			skipped = append(skipped, proc.ID)
			continue
		}
		w := workers[Shard(proc.ID, count)]
		w.procs = append(w.procs, proc)
		if len(only) == 0 {
			w.requested = append(w.requested, proc.ID)
		}
	}

	for _, def := range only {
		w := workers[Shard(def, count)]
		w.requested = append(w.requested, def)
	}

	slices.Sort(skipped)
	return workers, skipped
}

// Shard returns the index of the worker that owns def among count workers.
// The same definition always maps to the same worker, so the worker that
// stores an artifact is the one that retrieves it.
func Shard(def domain.DefinitionID, count int) int {
	return int(xxhash.Sum64(def.Bytes()) % uint64(count))
}

func procedureNames(m *domain.Manifest) map[domain.DefinitionID]string {
	names := make(map[domain.DefinitionID]string, len(m.Procedures))
	for _, proc := range m.Procedures {
		names[proc.ID] = proc.Name
	}
	return names
}
