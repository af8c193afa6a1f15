package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"declfix/internal/source"
	"declfix/internal/token"
)

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type TokenOutput struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Leading  []TriviaOutput `json:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty"`
}

func triviaKinds(l token.TriviaList) string {
	kinds := make([]string, 0, len(l))
	for _, tr := range l {
		kinds = append(kinds, tr.Kind.String())
	}
	return strings.Join(kinds, ", ")
}

func triviaOut(l token.TriviaList) []TriviaOutput {
	if len(l) == 0 {
		return nil
	}
	out := make([]TriviaOutput, 0, len(l))
	for _, tr := range l {
		out = append(out, TriviaOutput{Kind: tr.Kind.String(), Text: tr.Text})
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", triviaKinds(tok.Leading))
		}
		if len(tok.Trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", triviaKinds(tok.Trailing))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Leading:  triviaOut(tok.Leading),
			Trailing: triviaOut(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
