package csharp

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"declfix/internal/diag"
	"declfix/internal/source"
)

const snippetLimit = 24

// reportErrors walks the subtrees that contain errors and reports each ERROR
// region (SYN2001) and each node the grammar had to invent (SYN2002).
func (b *builder) reportErrors(n *sitter.Node) {
	if n == nil || !n.HasError() || b.exhausted() {
		return
	}
	sp := source.Span{File: b.file.ID, Start: n.StartByte(), End: n.EndByte()}
	switch {
	case n.IsMissing():
		b.errs++
		diag.ReportError(b.rep, diag.SynMissingNode, sp, fmt.Sprintf("missing %s", n.Type())).Emit()
		return
	case n.Type() == "ERROR":
		b.errs++
		diag.ReportError(b.rep, diag.SynParseError, sp, fmt.Sprintf("syntax error near %q", b.snippet(n))).
			WithNote(sp, "declarations overlapping this region are not rewritten").
			Emit()
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		b.reportErrors(n.Child(i))
	}
}

func (b *builder) exhausted() bool {
	return b.budget > 0 && b.errs >= b.budget
}

func (b *builder) snippet(n *sitter.Node) string {
	s := strings.Join(strings.Fields(b.text(n)), " ")
	if r := []rune(s); len(r) > snippetLimit {
		return string(r[:snippetLimit]) + "..."
	}
	return s
}
