package analysis

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// Package-level tracer for analysis runs.
var tracer = otel.Tracer("netanalyzer.analysis")

// startRunSpan creates the span covering a whole run.
func startRunSpan(ctx context.Context, runID string, g *network.Graph, workers int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Analysis.Run",
		trace.WithAttributes(
			attribute.String("analysis.run_id", runID),
			attribute.String("analysis.mode", g.Interpretation().String()),
			attribute.Int("graph.node_count", g.NodeCount()),
			attribute.Int("graph.edge_count", g.EdgeCount()),
			attribute.Int("analysis.workers", workers),
		),
	)
}

// startPassSpan creates a child span for one pass.
func startPassSpan(ctx context.Context, pass string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Analysis."+pass,
		trace.WithAttributes(attribute.String("analysis.pass", pass)),
	)
}

// setRunSpanResult records the terminal state on the run span.
func setRunSpanResult(span trace.Span, state State, err error) {
	span.SetAttributes(attribute.String("analysis.outcome", state.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
