package testkit

import (
	"testing"

	"declfix/internal/diag"
	"declfix/internal/lexer"
	"declfix/internal/modifier"
	"declfix/internal/source"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

// Decl lexes src and assembles a declaration of kind k from it: leading
// "[...]" groups become attributes, the following run of modifier keywords
// becomes the modifier list and everything else the head. The name is the
// last identifier before the first '(', '=', ';', '{' or ':'.
func Decl(t testing.TB, k syntax.Kind, src string) syntax.Decl {
	t.Helper()
	toks := Lex(t, src)
	return syntax.New(k, Split(toks))
}

// Lex tokenizes src into a fresh virtual file and drops the EOF token.
// Lexical errors fail the test.
func Lex(t testing.TB, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("snippet.cs", []byte(src))
	bag := diag.NewBag(16)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() > 0 {
		t.Fatalf("lex %q: %s", src, bag.Items()[0].Message)
	}
	return toks[:len(toks)-1]
}

// Split divides a declaration's tokens into Parts.
func Split(toks []token.Token) syntax.Parts {
	var p syntax.Parts
	i := 0
	for i < len(toks) && toks[i].Kind == token.LBracket {
		depth := 0
		for i < len(toks) {
			switch toks[i].Kind {
			case token.LBracket:
				depth++
			case token.RBracket:
				depth--
			}
			p.Attrs = append(p.Attrs, toks[i])
			i++
			if depth == 0 {
				break
			}
		}
	}
	for i < len(toks) {
		if _, ok := modifier.FromToken(toks[i].Kind); !ok {
			break
		}
		p.Mods = append(p.Mods, toks[i])
		i++
	}
	p.Head = toks[i:]
	for _, t := range p.Head {
		switch t.Kind {
		case token.LParen, token.Assign, token.Semicolon, token.LBrace, token.Colon:
			return p
		case token.Ident:
			p.Name = t.Text
		}
	}
	return p
}
