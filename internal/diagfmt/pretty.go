package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"declfix/internal/diag"
	"declfix/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fix func(a ...any) string
}

func paint(on bool, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint
}

func newPalette(on bool) palette {
	return palette{
		err:    paint(on, color.FgRed, color.Bold),
		warn:   paint(on, color.FgYellow, color.Bold),
		info:   paint(on, color.FgCyan, color.Bold),
		code:   paint(on, color.Bold),
		gutter: paint(on, color.FgBlue),
		caret:  paint(on, color.FgGreen, color.Bold),
		note:   paint(on, color.FgMagenta),
		fix:    paint(on, color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err(s.String())
	case diag.SevWarning:
		return p.warn(s.String())
	default:
		return p.info(s.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке items:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   3 | static public void M() { }
//	     | ^~~~~~~~~~~~~
//
// затем заметки и исправления, если они включены.
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		file := fs.Get(d.Primary.File)
		path := file.FormatPath(opts.PathMode.mode(), fs.BaseDir())
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col,
			p.severity(d.Severity), p.code(d.Code.ID()), d.Message)

		if len(file.Content) > 0 {
			writeSnippet(w, p, file, start, end, int(opts.Context))
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				ns, _ := fs.Resolve(n.Span)
				npath := fs.Get(n.Span.File).FormatPath(opts.PathMode.mode(), fs.BaseDir())
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note("note:"), npath, ns.Line, ns.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			writeFixes(w, p, fs, d.Fixes, opts)
		}
	}
}

func writeSnippet(w io.Writer, p palette, file *source.File, start, end source.LineCol, context int) {
	first := max(1, int(start.Line)-context)
	last := int(start.Line) + context
	lines := len(file.LineIdx) + 1
	last = min(last, lines)
	width := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := file.GetLine(uint32(ln)) //nolint:gosec // ln <= line count
		fmt.Fprintf(w, " %s %s %s\n", p.gutter(fmt.Sprintf("%*d", width, ln)), p.gutter("|"), text)
		if ln != int(start.Line) {
			continue
		}
		from := min(int(start.Col)-1, len(text))
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(text))
		}
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", width), p.gutter("|"), pad(text[:from]), p.caret(underline(text[from:max(from, to)])))
	}
}

// pad returns blanks as wide as s on screen, keeping tabs so the caret
// lines up with the source line.
func pad(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(s string) string {
	n := max(1, runewidth.StringWidth(s))
	return "^" + strings.Repeat("~", n-1)
}

func writeFixes(w io.Writer, p palette, fs *source.FileSet, fixes []*diag.Fix, opts PrettyOpts) {
	ctx := diag.FixBuildContext{FileSet: fs}
	for i, f := range sortedFixes(fixes) {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(w, "  %s %s (build error: %v)\n", p.fix(fmt.Sprintf("fix #%d:", i+1)), f.Title, err)
			continue
		}
		meta := []string{resolved.Kind.String(), resolved.Applicability.String()}
		if resolved.IsPreferred {
			meta = append(meta, "preferred")
		}
		if resolved.ID != "" {
			meta = append(meta, "id="+resolved.ID)
		}
		fmt.Fprintf(w, "  %s %s (%s)\n", p.fix(fmt.Sprintf("fix #%d:", i+1)), resolved.Title, strings.Join(meta, ", "))
		for _, e := range resolved.Edits {
			s, en := fs.Resolve(e.Span)
			epath := fs.Get(e.Span.File).FormatPath(opts.PathMode.mode(), fs.BaseDir())
			fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q\n", epath, s.Line, s.Col, en.Line, en.Col, e.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range preview.before {
				fmt.Fprintf(w, "      %s\n", p.err("- "+l))
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "      %s\n", p.fix("+ "+l))
			}
		}
	}
}
