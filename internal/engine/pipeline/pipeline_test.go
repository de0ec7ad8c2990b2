package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/handoff/internal/adapters/analysis"
	"go.trai.ch/handoff/internal/adapters/digest"
	"go.trai.ch/handoff/internal/adapters/telemetry"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/handoff/internal/core/ports/mocks"
	"go.trai.ch/handoff/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func proc(id domain.DefinitionID, name string) domain.Procedure {
	return domain.Procedure{
		ID:   id,
		Name: name,
		Body: &domain.Body{
			Def:    id,
			Locals: domain.NewSymbols([]string{"_0"}),
			Blocks: []domain.BasicBlock{{
				Statements: domain.NewSymbols([]string{fmt.Sprintf("_0 = const %d", id)}),
				Terminator: domain.Terminator{Kind: domain.TerminatorReturn},
			}},
		},
		Facts: &domain.FactSet{},
	}
}

func manifest() *domain.Manifest {
	return &domain.Manifest{
		Session: "demo",
		Procedures: []domain.Procedure{
			proc(1, "demo::a"),
			proc(2, "demo::b"),
			{ID: 3, Name: "demo::spec", SpecOnly: true},
			proc(4, "demo::c"),
			proc(5, "demo::d"),
			proc(6, "demo::e"),
		},
	}
}

// fakeAnalyzer returns a mock analyzer that wraps the procedure's own body.
func fakeAnalyzer(ctrl *gomock.Controller) *mocks.MockAnalyzer {
	a := mocks.NewMockAnalyzer(ctrl)
	a.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, scope *domain.Scope, p domain.Procedure) (handoff.Artifact, error) {
			return handoff.NewArtifact(scope, p.Body, p.Facts), nil
		},
	).AnyTimes()
	return a
}

func TestPipeline_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	result, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 3})
	require.NoError(t, err)

	assert.Equal(t, "demo", result.Session)
	assert.Equal(t, 3, result.Workers)
	assert.Equal(t, []domain.DefinitionID{3}, result.Skipped)
	assert.Empty(t, result.Leftover)

	require.Len(t, result.Encodings, 5)
	scopeIDs := map[string]string{}
	for i, want := range []domain.DefinitionID{1, 2, 4, 5, 6} {
		enc := result.Encodings[i]
		assert.Equal(t, want, enc.Def)
		worker := fmt.Sprintf("w%d", pipeline.Shard(want, 3))
		assert.Equal(t, worker, enc.Worker, "the storing worker retrieves")
		assert.Equal(t, "demo/encode/"+worker, enc.Scope)
		assert.Len(t, enc.Digest, 16)

		if id, seen := scopeIDs[worker]; seen {
			assert.Equal(t, id, enc.ScopeID, "one encode scope per worker")
		}
		scopeIDs[worker] = enc.ScopeID
	}
	assert.Equal(t, "demo::a", result.Encodings[0].Name)
}

func TestPipeline_Run_DigestMatchesDirectEncoding(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	m := manifest()
	result, err := p.Run(context.Background(), m, pipeline.Options{Workers: 2})
	require.NoError(t, err)

	for _, enc := range result.Encodings {
		src, ok := m.Lookup(enc.Def)
		require.True(t, ok)
		assert.Equal(t, digest.Sum(src.Body, src.Facts), enc.Digest)
	}
}

func TestPipeline_Run_DefaultWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	result, err := p.Run(context.Background(), manifest(), pipeline.Options{})
	require.NoError(t, err)
	assert.Positive(t, result.Workers)
	assert.Len(t, result.Encodings, 5)
}

func TestPipeline_Run_DuplicateDefinition(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := pipeline.NewPipeline(fakeAnalyzer(ctrl), digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	m := &domain.Manifest{
		Session:    "demo",
		Procedures: []domain.Procedure{proc(7, "first"), proc(7, "second")},
	}

	_, err := p.Run(context.Background(), m, pipeline.Options{Workers: 4})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPhaseAborted.Error())
	assert.ErrorContains(t, err, "already held")
	assert.ErrorContains(t, err, "DefId(0:7)")

	var v *handoff.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "store", v.Op)
}

func TestPipeline_Run_RequestedSpecOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mockLogger)

	_, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 2, Only: []domain.DefinitionID{3}})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPhaseAborted.Error())
	assert.ErrorContains(t, err, "specification-only")

	var v *handoff.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, domain.DefinitionID(3), v.Def)
	assert.Equal(t, fmt.Sprintf("w%d", pipeline.Shard(3, 2)), v.Worker)
}

func TestPipeline_Run_OnlyLeavesLeftovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).MinTimes(1)

	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mockLogger)

	result, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 2, Only: []domain.DefinitionID{4, 1}})
	require.NoError(t, err)

	require.Len(t, result.Encodings, 2)
	assert.Equal(t, domain.DefinitionID(1), result.Encodings[0].Def)
	assert.Equal(t, domain.DefinitionID(4), result.Encodings[1].Def)
	assert.Equal(t, []domain.DefinitionID{2, 5, 6}, result.Leftover)
}

func TestPipeline_Run_AnalysisError(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(handoff.Artifact{}, errors.New("lowering failed")).AnyTimes()

	p := pipeline.NewPipeline(analyzer, digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	_, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAnalysisFailed.Error())
	assert.ErrorContains(t, err, "lowering failed")
}

func TestPipeline_Run_EncodingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	encoder := mocks.NewMockEncoder(ctrl)
	encoder.EXPECT().Encode(gomock.Any(), gomock.Any()).
		Return(domain.Encoding{}, errors.New("disk full")).AnyTimes()

	p := pipeline.NewPipeline(analysis.NewAnalyzer(), encoder, telemetry.NewNoOpTracer(), mockLogger)

	_, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrEncodingFailed.Error())
}

func TestPipeline_Run_Canceled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Run(ctx, manifest(), pipeline.Options{Workers: 2})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipeline_Run_Spans(t *testing.T) {
	collector := telemetry.NewCollector()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(collector))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctrl := gomock.NewController(t)
	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), telemetry.NewOTelTracer("test"), mocks.NewMockLogger(ctrl))

	result, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 1})
	require.NoError(t, err)

	byName := map[string]telemetry.SpanRecord{}
	for _, s := range collector.Spans() {
		byName[s.Name] = s
	}

	require.Contains(t, byName, "run demo")
	assert.Equal(t, "run", byName["run demo"].Kind)
	assert.Equal(t, "5", byName["run demo"].Attributes["encoded"])

	require.Contains(t, byName, "analysis")
	assert.Equal(t, "phase", byName["analysis"].Kind)
	require.Contains(t, byName, "encoding")

	require.Contains(t, byName, "analysis w0")
	assert.Equal(t, "worker", byName["analysis w0"].Kind)
	assert.Equal(t, "5", byName["analysis w0"].Attributes["stored"])
	assert.Equal(t, "5", byName["encoding w0"].Attributes["retrieved"])

	require.NotEmpty(t, result.SessionID)
	assert.Equal(t, result.SessionID, byName["run demo"].Attributes["scope_id"])
	assert.Equal(t, result.Encodings[0].ScopeID, byName["encoding w0"].Attributes["scope_id"])
	assert.NotEqual(t, result.SessionID, result.Encodings[0].ScopeID)
}

func TestPipeline_Run_SpanAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	span := mocks.NewMockSpan(ctrl)
	tracer := mocks.NewMockTracer(ctrl)

	// run, two phases and one worker per phase.
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).Times(5)

	span.EXPECT().SetAttribute("workers", 1)
	span.EXPECT().SetAttribute("scope_id", gomock.Any()).Times(2)
	span.EXPECT().SetAttribute("worker", "w0").Times(2)
	span.EXPECT().SetAttribute("stored", 5)
	for i := 1; i <= 5; i++ {
		span.EXPECT().SetAttribute("retrieved", i)
	}
	span.EXPECT().SetAttribute("encoded", 5)
	span.EXPECT().End().Times(5)

	p := pipeline.NewPipeline(analysis.NewAnalyzer(), digest.NewEncoder(), tracer, mocks.NewMockLogger(ctrl))

	_, err := p.Run(context.Background(), manifest(), pipeline.Options{Workers: 1})
	require.NoError(t, err)
}

func TestRecoverViolation(t *testing.T) {
	t.Run("violation becomes an error", func(t *testing.T) {
		var err error
		func() {
			defer pipeline.RecoverViolation(&err, pipeline.PhaseEncoding, "w2")
			handoff.New("w2").Retrieve(domain.NewSession("s"), 11)
		}()

		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPhaseAborted.Error())
		assert.ErrorContains(t, err, "DefId(0:11)")
	})

	t.Run("other panics are re-raised", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			var err error
			defer pipeline.RecoverViolation(&err, pipeline.PhaseAnalysis, "w0")
			panic("boom")
		})
	})

	t.Run("no panic", func(t *testing.T) {
		var err error
		func() {
			defer pipeline.RecoverViolation(&err, pipeline.PhaseAnalysis, "w0")
		}()
		assert.NoError(t, err)
	})
}

func TestShard(t *testing.T) {
	for def := domain.DefinitionID(0); def < 50; def++ {
		s := pipeline.Shard(def, 4)
		assert.GreaterOrEqual(t, s, 0)
		assert.Less(t, s, 4)
		assert.Equal(t, s, pipeline.Shard(def, 4))
	}
	assert.Zero(t, pipeline.Shard(9, 1))
}
