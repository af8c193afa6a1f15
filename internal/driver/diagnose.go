package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"declfix/internal/analysis"
	"declfix/internal/csharp"
	"declfix/internal/diag"
	"declfix/internal/observ"
	"declfix/internal/source"
	"declfix/internal/trace"
)

type Options struct {
	Analysis analysis.Options
	// Fingerprint identifies Analysis in cache keys.
	Fingerprint    string
	MaxDiagnostics int
	// Jobs bounds parallel files; 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress ProgressSink
	// Timings adds an ObsTimings diagnostic per analyzed file.
	Timings bool
}

type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
}

// CheckFile parses and analyzes one loaded file. Results come from opts.Cache
// when an entry for the same content and settings exists; fresh results are
// stored back. The returned error is a cancellation or an unusable parser.
func CheckFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (FileResult, error) {
	file := fs.Get(id)
	res := FileResult{Path: file.Path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}

	ctx, span := trace.Start(ctx, trace.ScopeFile, file.Path)
	defer func() {
		span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End("")
	}()

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Hash, opts.Fingerprint)
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
		}
		if ok {
			for _, d := range fromPayload(&payload, id) {
				res.Bag.Add(d)
			}
			res.Cached = true
			emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusCached})
			return res, nil
		}
	}

	start := time.Now()
	timer := observ.NewTimer()
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	phase := timer.Begin("parse")
	pctx, pspan := trace.Start(ctx, trace.ScopePass, "parse")
	parsed, err := csharp.ParseFile(pctx, file, csharp.Options{
		Reporter:  diag.BagReporter{Bag: res.Bag},
		MaxErrors: opts.MaxDiagnostics,
	})
	pspan.End("")
	timer.End(phase)
	if err != nil {
		emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusError, Err: err})
		return res, err
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusWorking})
	phase = timer.Begin("analyze")
	actx, aspan := trace.Start(ctx, trace.ScopePass, "analyze")
	err = analysis.Check(actx, file, parsed.File, opts.Analysis, diag.BagReporter{Bag: res.Bag})
	aspan.End("")
	timer.End(phase)
	if err != nil {
		emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusError, Err: err})
		return res, err
	}
	res.Bag.Sort()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toPayload(fs, file.Path, res.Bag.Items())); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
		}
	}
	if opts.Timings {
		// после записи в кэш: тайминги не кэшируются
		at := source.Span{File: id}
		d := diag.New(diag.SevInfo, diag.ObsTimings, at, fmt.Sprintf("checked in %.1f ms", toMillis(timer.Total())))
		for _, note := range timer.Notes() {
			d = d.WithNote(at, note)
		}
		res.Bag.Add(d)
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(start)})
	return res, nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
