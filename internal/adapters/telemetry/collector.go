package telemetry

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanRecord is the summary of one ended span.
type SpanRecord struct {
	Name       string
	Kind       string
	Start      time.Time
	Duration   time.Duration
	Attributes map[string]string
	Failed     bool
	Status     string
}

// Collector implements sdktrace.SpanProcessor by keeping a summary of every
// ended span in memory.
type Collector struct {
	mu    sync.Mutex
	spans []SpanRecord
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// OnStart does nothing.
func (c *Collector) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records s.
func (c *Collector) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	rec := SpanRecord{
		Name:       s.Name(),
		Start:      s.StartTime(),
		Duration:   s.EndTime().Sub(s.StartTime()),
		Attributes: make(map[string]string, len(s.Attributes())),
		Failed:     s.Status().Code == codes.Error,
		Status:     s.Status().Description,
	}
	for _, kv := range s.Attributes() {
		if string(kv.Key) == KindKey {
			rec.Kind = kv.Value.AsString()
			continue
		}
		rec.Attributes[string(kv.Key)] = kv.Value.Emit()
	}

	c.mu.Lock()
	c.spans = append(c.spans, rec)
	c.mu.Unlock()
}

// Spans returns the recorded spans ordered by start time.
func (c *Collector) Spans() []SpanRecord {
	c.mu.Lock()
	out := slices.Clone(c.spans)
	c.mu.Unlock()

	slices.SortStableFunc(out, func(a, b SpanRecord) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Reset drops all recorded spans.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.spans = nil
	c.mu.Unlock()
}

// ForceFlush does nothing.
func (c *Collector) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (c *Collector) Shutdown(_ context.Context) error {
	return nil
}
