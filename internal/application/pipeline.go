// Package application orchestrates the governance evaluation pipeline:
// one use case record flows through evaluation, then fans out to the
// report renderer and the export serializer. The package depends on the
// ports interfaces for all pipeline stages and owns the wiring between
// them.
package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/parul-khanna/aigovlens/infrastructure/export"
	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/ports"
)

// RunArtifacts is everything one successful pipeline run produces. The
// report and export are built from the same evaluation snapshot and
// share a single generation timestamp, so their contents always agree.
type RunArtifacts struct {
	// Result is the validated evaluation the artifacts were built from.
	Result domain.EvaluationResult

	// Report is the rendered PDF document.
	Report []byte

	// ReportFilename is the conventional name for the PDF artifact.
	ReportFilename string

	// Export is the serialized JSON interchange document.
	Export []byte

	// ExportFilename is the conventional name for the JSON artifact.
	ExportFilename string

	// GeneratedAt is the shared timestamp stamped into both artifacts.
	GeneratedAt time.Time
}

// Pipeline runs use case records through evaluation and artifact
// production. It is safe for concurrent use; each run owns its record
// and artifacts exclusively.
type Pipeline struct {
	evaluator ports.UseCaseEvaluator
	renderer  ports.ReportRenderer
	exporter  ports.ExportSerializer
	metrics   ports.MetricsCollector
	now       func() time.Time
}

// PipelineOption customizes pipeline construction.
type PipelineOption func(*Pipeline)

// WithClock overrides the time source, which pins artifact timestamps
// in tests.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// WithMetrics attaches a metrics collector for per-stage latency and
// outcome counters. Without it the pipeline runs unobserved.
func WithMetrics(metrics ports.MetricsCollector) PipelineOption {
	return func(p *Pipeline) { p.metrics = metrics }
}

// NewPipeline wires the three pipeline stages together. All three are
// required; metrics and the clock are optional.
func NewPipeline(
	evaluator ports.UseCaseEvaluator,
	renderer ports.ReportRenderer,
	exporter ports.ExportSerializer,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator cannot be nil")
	}
	if renderer == nil {
		return nil, fmt.Errorf("report renderer cannot be nil")
	}
	if exporter == nil {
		return nil, fmt.Errorf("export serializer cannot be nil")
	}

	p := &Pipeline{
		evaluator: evaluator,
		renderer:  renderer,
		exporter:  exporter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run evaluates one use case and produces both artifacts, or neither.
// A failure in any stage aborts the run with the stage's typed error;
// partial artifacts are never returned. The renderer and serializer run
// concurrently against the same evaluation snapshot.
func (p *Pipeline) Run(ctx context.Context, record domain.UseCaseRecord) (RunArtifacts, error) {
	start := p.now()
	result, err := p.evaluator.Evaluate(ctx, record)
	p.recordStage("evaluate", p.now().Sub(start), err)
	if err != nil {
		return RunArtifacts{}, err
	}

	generatedAt := p.now().UTC()
	artifacts := RunArtifacts{
		Result:         result,
		GeneratedAt:    generatedAt,
		ReportFilename: export.ReportFilename(record.Name, generatedAt),
		ExportFilename: export.ExportFilename(record.Name, generatedAt),
	}

	bundle := domain.ExportBundle{
		UseCase:     record,
		Evaluation:  result,
		GeneratedAt: generatedAt,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		renderStart := p.now()
		report, renderErr := p.renderer.Render(record, result, generatedAt)
		p.recordStage("render_report", p.now().Sub(renderStart), renderErr)
		if renderErr != nil {
			return fmt.Errorf("report rendering: %w", renderErr)
		}
		artifacts.Report = report
		return nil
	})
	g.Go(func() error {
		exportStart := p.now()
		data, exportErr := p.exporter.Export(bundle)
		p.recordStage("export_json", p.now().Sub(exportStart), exportErr)
		if exportErr != nil {
			return fmt.Errorf("export serialization: %w", exportErr)
		}
		artifacts.Export = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return RunArtifacts{}, err
	}
	return artifacts, nil
}

// recordStage emits one latency observation and one outcome counter
// per stage when a collector is attached.
func (p *Pipeline) recordStage(stage string, duration time.Duration, err error) {
	if p.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	labels := map[string]string{"stage": stage, "status": status}
	p.metrics.RecordLatency(stage, duration, labels)
	p.metrics.RecordCounter("pipeline_stage_total", 1, labels)
}
