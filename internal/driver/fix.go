package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"declfix/internal/fix"
	"declfix/internal/source"
	"declfix/internal/trace"
)

// DefaultMaxPasses bounds FixPaths when FixOptions.MaxPasses is 0.
const DefaultMaxPasses = 8

type FixOptions struct {
	Apply fix.ApplyOptions
	// MaxPasses bounds the check-and-fix rounds of ApplyModeAll. Fixes that
	// overlap an already applied edit are retried on the next round.
	MaxPasses int
}

type FixReport struct {
	FileSet *source.FileSet
	Passes  int
	Applied []fix.AppliedFix
	// Skipped holds the fixes the last round could not apply.
	Skipped []fix.SkippedFix
	// Changes has one entry per modified file with its final content.
	Changes []fix.FileChange
	// Remaining is the latest check result. It predates the last round when
	// that round hit MaxPasses or the mode allows a single round only.
	Remaining *Run
}

// FixPaths checks the files under paths and applies their fixes. With
// ApplyModeAll it re-checks the changed files and repeats until nothing
// applies or MaxPasses is reached; other modes run a single round. Cached
// results are used for unchanged content.
func FixPaths(ctx context.Context, paths []string, opts Options, fo FixOptions) (*FixReport, error) {
	run, err := CheckPaths(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "fix")
	report := &FixReport{FileSet: run.FileSet, Remaining: run}
	defer func() {
		span.WithExtra("passes", fmt.Sprint(report.Passes)).
			WithExtra("applied", fmt.Sprint(len(report.Applied))).
			End("")
	}()

	maxPasses := fo.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	if fo.Apply.Mode != fix.ApplyModeAll {
		maxPasses = 1
	}
	final := make(map[string]fix.FileChange)

	for report.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := fix.Apply(run.FileSet, run.Diagnostics(), fo.Apply)
		if res != nil {
			report.Skipped = res.Skipped
		}
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			return report, err
		}
		report.Passes++
		report.Applied = append(report.Applied, res.Applied...)

		changed := make(map[source.FileID]fix.FileChange, len(res.FileChanges))
		for _, ch := range res.FileChanges {
			changed[ch.File] = ch
		}
		files := make([]string, 0, len(changed))
		ids := make([]source.FileID, 0, len(changed))
		slots := make([]int, 0, len(changed))
		for i, fr := range run.Files {
			ch, ok := changed[fr.FileID]
			if !ok {
				continue
			}
			old := run.FileSet.Get(fr.FileID)
			// новая версия файла получает новый FileID; флаги BOM/CRLF сохраняются
			id := run.FileSet.Add(old.Path, ch.Content, old.Flags)
			ch.File = id
			final[old.Path] = ch
			emit(opts.Progress, Event{File: old.Path, Stage: StageFix, Status: StatusDone})
			files = append(files, old.Path)
			ids = append(ids, id)
			slots = append(slots, i)
		}
		if fo.Apply.Mode != fix.ApplyModeAll || report.Passes == maxPasses {
			break
		}
		fresh := make([]FileResult, len(files))
		if err := checkLoaded(ctx, run.FileSet, files, ids, make([]error, len(files)), opts, fresh); err != nil {
			return report, err
		}
		for j, i := range slots {
			run.Files[i] = fresh[j]
		}
	}

	for _, ch := range final {
		report.Changes = append(report.Changes, ch)
	}
	slices.SortFunc(report.Changes, func(a, b fix.FileChange) int {
		return strings.Compare(a.Path, b.Path)
	})
	return report, nil
}
