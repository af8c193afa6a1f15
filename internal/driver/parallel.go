package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"declfix/internal/diag"
	"declfix/internal/source"
	"declfix/internal/trace"
)

// build output and VCS metadata never hold sources worth checking
var skipDirs = map[string]bool{
	".git": true,
	".vs":  true,
	"bin":  true,
	"obj":  true,
}

// ListFiles expands paths into a sorted, duplicate-free list of .cs files.
// Files named explicitly are kept whatever their extension.
func ListFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".cs") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Run is the outcome of checking a set of files. Files keeps the order of
// ListFiles.
type Run struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics flattens every file's diagnostics in file order.
func (r *Run) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Bag.Items()...)
	}
	return out
}

// Counts returns the number of errors, warnings and infos.
func (r *Run) Counts() (errors, warnings, infos int) {
	for _, d := range r.Diagnostics() {
		switch {
		case d.Severity.Blocking():
			errors++
		case d.Severity == diag.SevWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// CheckPaths loads every file under paths and checks them in parallel.
// Files that fail to load get an IO diagnostic instead of results.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*Run, error) {
	files, err := ListFiles(paths)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.WithExtra("files", fmt.Sprint(len(files))).End("")

	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		ids[i], loadErrs[i] = fileSet.Load(path)
		if loadErrs[i] != nil {
			// empty stand-in so the IO diagnostic still names the file
			ids[i] = fileSet.AddVirtual(path, nil)
		}
	}
	run := &Run{FileSet: fileSet, Files: make([]FileResult, len(files))}
	err = checkLoaded(ctx, fileSet, files, ids, loadErrs, opts, run.Files)
	return run, err
}

// checkLoaded fills results[i] for files[i]. Results are written by index,
// so no locking is needed.
func checkLoaded(ctx context.Context, fileSet *source.FileSet, files []string, ids []source.FileID, loadErrs []error, opts Options, results []FileResult) error {
	if len(files) == 0 {
		return nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: ids[i]}, "failed to load file: "+loadErrs[i].Error()))
				results[i] = FileResult{Path: path, FileID: ids[i], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErrs[i]})
				return nil
			}
			res, err := CheckFile(gctx, fileSet, ids[i], opts)
			results[i] = res
			return err
		})
	}
	return g.Wait()
}
