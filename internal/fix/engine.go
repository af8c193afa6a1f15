package fix

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"declfix/internal/diag"
	"declfix/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first safe fix (or the first fix at all).
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting fix the options allow.
	ApplyModeAll
	// ApplyModeID applies the single fix with ApplyOptions.TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// Heuristics lets ApplyModeAll pick SafeWithHeuristics fixes too.
	Heuristics bool
	// DryRun computes the new contents without touching the disk.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file. Content is the
// new text of the file; it is filled for dry runs and real runs alike.
type FileChange struct {
	File      source.FileID
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	if fs == nil {
		return &ApplyResult{}, fmt.Errorf("fix: FileSet is nil")
	}
	cands, skips := gatherCandidates(diag.FixBuildContext{FileSet: fs}, diagnostics)
	return run(fs, cands, skips, opts)
}

// ApplyFixes applies fixes that were not produced by diagnostics, such as
// the result of an explicit refactoring command. Every fix is a candidate
// in the given order.
func ApplyFixes(fs *source.FileSet, fixes []diag.Fix, opts ApplyOptions) (*ApplyResult, error) {
	if fs == nil {
		return &ApplyResult{}, fmt.Errorf("fix: FileSet is nil")
	}
	diagnostics := make([]diag.Diagnostic, 0, len(fixes))
	for i := range fixes {
		f := fixes[i]
		var primary source.Span
		if len(f.Edits) > 0 {
			primary = f.Edits[0].Span
		}
		d := diag.New(diag.SevInfo, diag.StyInfo, primary, f.Title)
		diagnostics = append(diagnostics, d.WithFixSuggestion(&f))
	}
	return Apply(fs, diagnostics, opts)
}

func run(fs *source.FileSet, cands []candidate, skips []SkippedFix, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{Skipped: skips}
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(cands)

	selected, selectionSkips := selectCandidates(cands, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	w := newWorkspace(fs)
	for _, c := range selected {
		n, reason := w.stage(c.fix.Edits)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: reason})
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, c.diag.Primary.File),
			EditCount:     n,
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	result.FileChanges = w.changes()
	if opts.DryRun {
		return result, nil
	}
	if err := writeBack(fs, result.FileChanges); err != nil {
		return result, err
	}
	return result, nil
}

// gatherCandidates materializes the fixes of every diagnostic. Fixes that
// fail to build, carry no edits or repeat an already seen ID are skipped.
// A fix without ID gets one derived from the diagnostic code and position.
func gatherCandidates(ctx diag.FixBuildContext, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
		seen  = make(map[string]struct{})
	)
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			skips = append(skips, SkippedFix{
				Title:  d.Message,
				Reason: fmt.Sprintf("failed to build fixes: %v", err),
			})
			continue
		}
		for idx, f := range resolved {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders by file, span start, span end, gather order, code,
// preference (preferred first), ID and title.
func sortCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		if r := cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.diag.Code, b.diag.Code),
		); r != 0 {
			return r
		}
		if a.fix.IsPreferred != b.fix.IsPreferred {
			if a.fix.IsPreferred {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(a.fix.ID, b.fix.ID), cmp.Compare(a.fix.Title, b.fix.Title))
	})
}

func allowed(f diag.Fix, opts ApplyOptions) bool {
	switch f.Applicability {
	case diag.FixApplicabilityAlwaysSafe:
		return true
	case diag.FixApplicabilitySafeWithHeuristics:
		return opts.Heuristics
	default:
		return false
	}
}

func selectCandidates(cands []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, c := range cands {
			if c.fix.ID != opts.TargetID {
				continue
			}
			if c.fix.RequiresAll {
				return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix requires all fixes to be applied"}}
			}
			return []candidate{c}, nil
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}

	case ApplyModeAll:
		var selected []candidate
		var skipped []SkippedFix
		for _, c := range cands {
			if allowed(c.fix, opts) {
				selected = append(selected, c)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     c.fix.ID,
				Title:  c.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", c.fix.Applicability),
			})
		}
		return selected, skipped

	case ApplyModeOnce:
		var skipped []SkippedFix
		fallback := -1
		for i, c := range cands {
			if c.fix.RequiresAll {
				skipped = append(skipped, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: "fix requires all fixes to be applied"})
				continue
			}
			if c.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{c}, skipped
			}
			if fallback < 0 {
				fallback = i
			}
		}
		if fallback >= 0 {
			return []candidate{cands[fallback]}, skipped
		}
		return nil, skipped
	}
	return nil, nil
}

func writeBack(fs *source.FileSet, changes []FileChange) error {
	for _, ch := range changes {
		file := fs.Get(ch.File)
		if file.Flags&source.FileVirtual != 0 {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, restoreEncoding(file, ch.Content), mode); err != nil {
			return fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return nil
}

// restoreEncoding undoes the normalisation done when the file was loaded.
func restoreEncoding(f *source.File, buf []byte) []byte {
	if f.Flags&source.FileNormalizedCRLF != 0 {
		buf = bytes.ReplaceAll(buf, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&source.FileHadBOM != 0 {
		buf = append([]byte{0xEF, 0xBB, 0xBF}, buf...)
	}
	return buf
}

func formatFilePath(fs *source.FileSet, id source.FileID) string {
	file := fs.Get(id)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
