package csharp

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"declfix/internal/diag"
	"declfix/internal/lexer"
	"declfix/internal/source"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// MaxErrors caps the syntax errors reported per file; 0 means no cap.
	MaxErrors int
}

type Result struct {
	File *syntax.File
	Bag  *diag.Bag
}

// ParseFile lexes and parses one file. Lexical and syntax problems are
// reported and produce malformed declarations; the returned error is only
// set when parsing could not run at all (cancellation, grammar failure).
func ParseFile(ctx context.Context, f *source.File, opts Options) (Result, error) {
	rep := opts.Reporter
	var bag *diag.Bag
	switch r := rep.(type) {
	case nil:
		bag = diag.NewBag(0)
		rep = diag.BagReporter{Bag: bag}
	case diag.BagReporter:
		bag = r.Bag
	}
	rep = diag.NewDedupReporter(rep)

	toks := lexer.Tokenize(f, lexer.Options{Reporter: rep})

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(csharp.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	defer tree.Close()

	b := builder{
		file:   f,
		toks:   toks,
		src:    f.Content,
		rep:    rep,
		budget: opts.MaxErrors,
	}
	root := tree.RootNode()
	b.reportErrors(root)

	top := b.members(root)
	decls := make([]syntax.Decl, 0, len(top))
	for _, m := range top {
		decls = append(decls, m.decl)
	}
	out := &syntax.File{
		ID:     f.ID,
		Decls:  decls,
		Nested: b.nested,
		Tokens: toks,
	}
	return Result{File: out, Bag: bag}, nil
}

// ParseSource parses an in-memory snippet; used by the CLI for stdin and by tests.
func ParseSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) (Result, error) {
	id := fs.AddVirtual(name, content)
	return ParseFile(ctx, fs.Get(id), opts)
}

// tokenRange maps a byte range onto token indexes: lo is the first token
// starting at or after start, hi the first token starting at or after end.
func (b *builder) tokenRange(n *sitter.Node) (lo, hi int) {
	return b.tokenAt(n.StartByte()), b.tokenAt(n.EndByte())
}

func (b *builder) tokenAt(off uint32) int {
	lo, hi := 0, len(b.toks)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if b.toks[mid].Span.Start < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (b *builder) slice(lo, hi int) []token.Token {
	if lo >= hi {
		return nil
	}
	return b.toks[lo:hi]
}
