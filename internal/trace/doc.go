// Package trace records where declfix spends its time.
//
// Tracing is switched on from the command line:
//
//	declfix check --trace=- --trace-level=detail src/
//
// Events are grouped by scope. Driver events mark whole runs, pass events
// the per-file phases (load, parse, analyze, fix), file events one file of
// a directory run and node events single declarations.
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
