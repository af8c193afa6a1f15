package lexer

import (
	"declfix/internal/token"
)

// scanNumber поддерживает 0x.., 0b.., десятичные с '_', дробную часть,
// экспоненту и суффиксы (u, l, ul, f, d, m). Значение не вычисляется:
// движку нужен только точный исходный текст.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.BumpN(2)
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lx.scanNumberSuffix()
			return lx.emit(token.NumberLit, start)
		case 'b', 'B':
			lx.cursor.BumpN(2)
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.scanNumberSuffix()
			return lx.emit(token.NumberLit, start)
		}
	}

	lx.scanDigits()
	// "1..2" - это диапазон, а не дробь; "1.ToString()" - доступ к члену
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.scanDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
		case (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)):
			lx.cursor.BumpN(2)
		}
		lx.scanDigits()
	}
	lx.scanNumberSuffix()
	return lx.emit(token.NumberLit, start)
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanNumberSuffix() {
	for {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'd', 'D', 'm', 'M':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
