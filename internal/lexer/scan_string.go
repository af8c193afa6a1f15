package lexer

import (
	"declfix/internal/diag"
	"declfix/internal/token"
)

// isStringStart распознаёт префиксы строковых литералов:
// "...", @"...", $"...", $@"...", @$"...", """raw""", $$"""raw""".
func (lx *Lexer) isStringStart() bool {
	var i uint32
	for lx.cursor.PeekAt(i) == '$' {
		i++
	}
	if lx.cursor.PeekAt(i) == '@' {
		i++
		for lx.cursor.PeekAt(i) == '$' {
			i++
		}
	}
	return lx.cursor.PeekAt(i) == '"'
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if lx.consumeString() {
		return lx.emit(token.StringLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// consumeString съедает литерал целиком, включая префикс. Возвращает false,
// если закрывающая кавычка не найдена; курсор тогда стоит на '\n' или EOF.
func (lx *Lexer) consumeString() bool {
	interpolated, verbatim := false, false
	for {
		switch {
		case lx.cursor.Eat('$'):
			interpolated = true
			continue
		case lx.cursor.Eat('@'):
			verbatim = true
			continue
		}
		break
	}

	quotes := uint32(0)
	for lx.cursor.PeekAt(quotes) == '"' {
		quotes++
	}
	switch {
	case quotes >= 3 && !verbatim:
		lx.cursor.BumpN(quotes)
		return lx.consumeRawBody(quotes)
	case quotes == 2 && !verbatim:
		// пустая строка ""
		lx.cursor.BumpN(2)
		return true
	}
	lx.cursor.Bump()
	return lx.consumeQuotedBody(verbatim, interpolated)
}

func (lx *Lexer) consumeQuotedBody(verbatim, interpolated bool) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			if verbatim && lx.cursor.PeekAt(1) == '"' {
				lx.cursor.BumpN(2)
				continue
			}
			lx.cursor.Bump()
			return true
		case b == '\\' && !verbatim:
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				return false
			}
			lx.cursor.Bump()
		case b == '\n' && !verbatim:
			return false
		case b == '{' && interpolated:
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.BumpN(2)
				continue
			}
			lx.cursor.Bump()
			if !lx.consumeHole() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// consumeHole пропускает выражение внутри {...} интерполированной строки,
// учитывая вложенные скобки, строки и символы.
func (lx *Lexer) consumeHole() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '{':
			depth++
			lx.cursor.Bump()
		case b == '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case (b == '"' || b == '@' || b == '$') && lx.isStringStart():
			if !lx.consumeString() {
				return false
			}
		case b == '\'':
			if !lx.consumeChar() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) consumeRawBody(quotes uint32) bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.cursor.Bump()
			continue
		}
		run := uint32(0)
		for lx.cursor.PeekAt(run) == '"' {
			run++
		}
		lx.cursor.BumpN(run)
		if run >= quotes {
			return true
		}
	}
	return false
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	if lx.consumeChar() {
		return lx.emit(token.CharLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

func (lx *Lexer) consumeChar() bool {
	lx.cursor.Bump() // opening '
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return true
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				return false
			}
			lx.cursor.Bump()
		case '\n':
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
