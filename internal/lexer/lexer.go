package lexer

import (
	"declfix/internal/source"
	"declfix/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	// lineStart is true while only whitespace has been seen on the current
	// line; '#' directives are recognised only there.
	lineStart bool
	done      bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий значимый токен с собранными Leading и Trailing.
// Trivia в конце файла достаётся EOF как Leading, так что конкатенация
// FullText всех токенов совпадает с исходным текстом.
// После EOF всегда возвращает EOF без trivia.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '@' && isIdentStartByte(lx.cursor.PeekAt(1)):
		tok = lx.scanIdentOrKeyword()
	case ch == '@' || ch == '$' || ch == '"':
		if lx.isStringStart() {
			tok = lx.scanString()
		} else {
			tok = lx.scanOperatorOrPunct()
		}
	case ch == '\'':
		tok = lx.scanChar()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	lx.lineStart = false

	tok.Leading = lx.hold
	lx.hold = nil
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// Tokenize lexes the whole file. The final token is always EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
