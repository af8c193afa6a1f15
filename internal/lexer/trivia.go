package lexer

import (
	"declfix/internal/diag"
	"declfix/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\f', '\v', '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment, ///... -> TriviaDocComment
//   - /* ... */ -> TriviaBlockComment (без вложенности, как в C#)
//   - #... до \n в начале строки -> TriviaDirective
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			lx.hold = append(lx.hold, lx.scanSpaces())
		case b == '\n':
			start := lx.cursor.Mark()
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaNewline, start))
			lx.lineStart = true
		case b == '#' && lx.lineStart:
			start := lx.cursor.Mark()
			lx.skipToLineEnd()
			lx.hold = append(lx.hold, lx.trivia(token.TriviaDirective, start))
		case b == '/':
			tv, ok := lx.scanComment()
			if !ok {
				return
			}
			lx.hold = append(lx.hold, tv)
			if tv.Kind != token.TriviaBlockComment {
				lx.lineStart = false
			}
		default:
			return
		}
	}
}

// collectTrailingTrivia собирает trivia после токена до первого перевода
// строки включительно. Всё, что дальше, станет Leading следующего токена.
func (lx *Lexer) collectTrailingTrivia() token.TriviaList {
	var out token.TriviaList
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			out = append(out, lx.scanSpaces())
		case b == '\n':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			out = append(out, lx.trivia(token.TriviaNewline, start))
			lx.lineStart = true
			return out
		case b == '/':
			tv, ok := lx.scanComment()
			if !ok {
				return out
			}
			out = append(out, tv)
		default:
			return out
		}
	}
	return out
}

func (lx *Lexer) scanSpaces() token.Trivia {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.trivia(token.TriviaSpace, start)
}

// //... , ///... , /*...*/
func (lx *Lexer) scanComment() (token.Trivia, bool) {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		kind := token.TriviaLineComment
		// "///" - doc comment, но "////" - обычный комментарий
		if lx.cursor.PeekAt(2) == '/' && lx.cursor.PeekAt(3) != '/' {
			kind = token.TriviaDocComment
		}
		lx.skipToLineEnd()
		return lx.trivia(kind, start), true
	case '*':
		lx.cursor.BumpN(2)
		for !lx.cursor.EOF() {
			if lx.cursor.EatString("*/") {
				return lx.trivia(token.TriviaBlockComment, start), true
			}
			lx.cursor.Bump()
		}
		tv := lx.trivia(token.TriviaBlockComment, start)
		lx.errLex(diag.LexUnterminatedBlockComment, tv.Span, "unterminated block comment")
		return tv, true
	default:
		// это не комментарий - пусть сканируется как оператор '/'
		return token.Trivia{}, false
	}
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
