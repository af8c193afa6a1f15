package lexer

import (
	"declfix/internal/diag"
	"declfix/internal/token"
)

// Многосимвольные операторы в порядке жадности. '>>' намеренно не склеиваем:
// закрывающие угловые скобки generic-типов лексятся по одной, как в Roslyn.
var multiOps = []string{
	"<<=", "??=", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"->", "::", "??", "<<", "..",
}

var singlePunct = map[byte]token.Kind{
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'?': token.Question,
	'~': token.Tilde,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range multiOps {
		if lx.cursor.EatString(op) {
			if op == "=>" {
				return lx.emit(token.FatArrow, start)
			}
			return lx.emit(token.Operator, start)
		}
	}

	ch := lx.cursor.Bump()
	if k, ok := singlePunct[ch]; ok {
		return lx.emit(k, start)
	}
	switch ch {
	case '+', '-', '*', '/', '%', '&', '|', '^', '!', '@', '$', '#':
		return lx.emit(token.Operator, start)
	}

	// неизвестный символ; для не-ASCII съедаем руну целиком
	if ch >= utf8RuneSelf {
		lx.cursor.Reset(start)
		lx.bumpRune()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}
