// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/weave/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	summary *Summary
}

// New creates a Recorder writing to a tape and keeping a Summary of vertex outcomes.
func New() *Recorder {
	summary := NewSummary(progrock.NewTape())
	r := NewRecorder(summary)
	r.summary = summary
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Summary returns the outcome summary, or nil when the recorder was built with NewRecorder.
func (r *Recorder) Summary() *Summary {
	return r.summary
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := &ports.VertexConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var vertexOpts []progrock.VertexOpt
	if cfg.Internal {
		vertexOpts = append(vertexOpts, progrock.Internal())
	}

	v := r.rec.Vertex(digest.FromString(name), name, vertexOpts...)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
