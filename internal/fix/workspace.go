package fix

import (
	"cmp"
	"slices"

	"declfix/internal/diag"
	"declfix/internal/source"
)

// workspace holds the edited buffers of one apply run. Every staged edit is
// kept with its original span so later edits can be shifted into the
// current buffer coordinates.
type workspace struct {
	fs      *source.FileSet
	buffers map[source.FileID][]byte
	applied map[source.FileID][]diag.TextEdit
	counts  map[source.FileID]int
}

func newWorkspace(fs *source.FileSet) *workspace {
	return &workspace{
		fs:      fs,
		buffers: make(map[source.FileID][]byte),
		applied: make(map[source.FileID][]diag.TextEdit),
		counts:  make(map[source.FileID]int),
	}
}

// stage applies all edits of one fix or none of them. It returns the number
// of edits applied, or a reason why the fix was rejected.
func (w *workspace) stage(edits []diag.TextEdit) (int, string) {
	byFile := make(map[source.FileID][]diag.TextEdit)
	var order []source.FileID
	for _, e := range edits {
		if _, ok := byFile[e.Span.File]; !ok {
			order = append(order, e.Span.File)
		}
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	staged := make(map[source.FileID][]byte, len(byFile))
	stagedApplied := make(map[source.FileID][]diag.TextEdit, len(byFile))
	for _, id := range order {
		fileEdits := byFile[id]
		if selfOverlap(fileEdits) {
			return 0, "fix contains overlapping edits"
		}
		if conflictsWithExisting(w.applied[id], fileEdits) {
			return 0, "conflicts with previously applied edits in " + formatFilePath(w.fs, id)
		}
		buf := w.buffers[id]
		if buf == nil {
			buf = w.fs.Get(id).Content
		}
		working := slices.Clone(buf)
		done := slices.Clone(w.applied[id])

		// с конца файла к началу: более ранние правки не сдвигают поздние
		slices.SortStableFunc(fileEdits, func(a, b diag.TextEdit) int {
			return cmp.Or(cmp.Compare(b.Span.Start, a.Span.Start), cmp.Compare(b.Span.End, a.Span.End))
		})
		for _, e := range fileEdits {
			start := int(e.Span.Start) + cumulativeDelta(done, int(e.Span.Start))
			end := int(e.Span.End) + cumulativeDelta(done, int(e.Span.End))
			if start < 0 || end < start || end > len(working) {
				return 0, "edit span out of range"
			}
			if e.OldText != "" && string(working[start:end]) != e.OldText {
				return 0, "existing text does not match expected content"
			}
			working = slices.Concat(working[:start], []byte(e.NewText), working[end:])
			done = insertEditSorted(done, e)
		}
		staged[id] = working
		stagedApplied[id] = done
	}

	for id, buf := range staged {
		w.buffers[id] = buf
		w.applied[id] = stagedApplied[id]
		w.counts[id] += len(byFile[id])
	}
	return len(edits), ""
}

func (w *workspace) changes() []FileChange {
	out := make([]FileChange, 0, len(w.buffers))
	for id, buf := range w.buffers {
		out = append(out, FileChange{
			File:      id,
			Path:      w.fs.Get(id).FormatPath("relative", w.fs.BaseDir()),
			EditCount: w.counts[id],
			Content:   buf,
		})
	}
	slices.SortFunc(out, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return out
}

func selfOverlap(edits []diag.TextEdit) bool {
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if spansConflict(edits[i], edits[j]) {
				return true
			}
		}
	}
	return false
}

func conflictsWithExisting(existing, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits touch the same text. Spans are
// half-open. Two insertions never conflict; an insertion conflicts with a
// replacement strictly containing its position or starting at it.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End
	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart <= aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// cumulativeDelta is the byte shift at pos caused by edits ending at or
// before pos. edits are sorted by start.
func cumulativeDelta(edits []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}

func insertEditSorted(edits []diag.TextEdit, e diag.TextEdit) []diag.TextEdit {
	i, _ := slices.BinarySearchFunc(edits, e, func(a, b diag.TextEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
	return slices.Insert(edits, i, e)
}
