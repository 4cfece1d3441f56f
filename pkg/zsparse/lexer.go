package zsparse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

var keywords = map[string]bool{
	"import":         true,
	"as":             true,
	"function":       true,
	"static":         true,
	"global":         true,
	"var":            true,
	"val":            true,
	"zenClass":       true,
	"zenConstructor": true,
	"extends":        true,
	"operator":       true,
	"return":         true,
	"break":          true,
	"continue":       true,
	"if":             true,
	"else":           true,
	"for":            true,
	"in":             true,
	"while":          true,
	"true":           true,
	"false":          true,
	"null":           true,
	"instanceof":     true,
	"has":            true,
	"$expand":        true,
	"any":            true,
	"bool":           true,
	"byte":           true,
	"short":          true,
	"int":            true,
	"long":           true,
	"float":          true,
	"double":         true,
	"string":         true,
	"void":           true,
}

var primitiveTypes = map[string]bool{
	"any":    true,
	"bool":   true,
	"byte":   true,
	"short":  true,
	"int":    true,
	"long":   true,
	"float":  true,
	"double": true,
	"string": true,
	"void":   true,
}

// punctuators ordered longest first so that the lexer is greedy.
var punctuators = []string{
	"...",
	"..", "==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "~=", "*=", "/=", "%=", "|=", "&=", "^=",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", ":", "?", "=",
	"+", "-", "*", "/", "%", "~", "!", "<", ">", "&", "|", "^", "$",
}

// Lex splits source into tokens. Comments and preprocessor lines are kept
// in the stream; the parser skips them.
func Lex(source string) []syntax.Token {
	l := &lexer{src: source}
	for {
		tok := l.next()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == syntax.TokenEOF {
			return l.tokens
		}
	}
}

type lexer struct {
	src    string
	pos    int
	tokens []syntax.Token
}

func (l *lexer) peekRune(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+offset:])
	return r
}

func (l *lexer) emit(kind syntax.TokenKind, start int) syntax.Token {
	return syntax.Token{
		Kind: kind,
		Span: syntax.Range{Start: start, End: l.pos},
		Text: l.src[start:l.pos],
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *lexer) next() syntax.Token {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return l.emit(syntax.TokenEOF, start)
	}

	rest := l.src[l.pos:]
	r, size := utf8.DecodeRuneInString(rest)

	switch {
	case strings.HasPrefix(rest, "//"):
		l.skipLine()
		return l.emit(syntax.TokenComment, start)
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			l.pos = len(l.src)
		} else {
			l.pos += end + 4
		}
		return l.emit(syntax.TokenComment, start)
	case r == '#':
		l.skipLine()
		return l.emit(syntax.TokenPreprocessor, start)
	case strings.HasPrefix(rest, "$expand") && !isIdentPart(l.runeAt(start+len("$expand"))):
		l.pos += len("$expand")
		return l.emit(syntax.TokenKeyword, start)
	case isIdentStart(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		if keywords[l.src[start:l.pos]] {
			return l.emit(syntax.TokenKeyword, start)
		}
		return l.emit(syntax.TokenIdentifier, start)
	case isDigit(r) || (r == '.' && isDigit(l.peekRune(1))):
		return l.number(start)
	case r == '"' || r == '\'':
		return l.str(start, r)
	case r == '<' && l.bracketHandlerAhead():
		end := strings.IndexByte(rest, '>')
		l.pos += end + 1
		return l.emit(syntax.TokenBracketHandler, start)
	}

	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			return l.emit(syntax.TokenPunct, start)
		}
	}
	l.pos += size
	return l.emit(syntax.TokenInvalid, start)
}

func (l *lexer) runeAt(offset int) rune {
	if offset >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[offset:])
	return r
}

func (l *lexer) skipLine() {
	end := strings.IndexByte(l.src[l.pos:], '\n')
	if end < 0 {
		l.pos = len(l.src)
		return
	}
	l.pos += end
}

// bracketHandlerAhead reports whether the '<' at the current position opens
// a bracket handler such as <minecraft:stone>. It must close on the same
// line, contain a ':' and no whitespace.
func (l *lexer) bracketHandlerAhead() bool {
	rest := l.src[l.pos+1:]
	if rest == "" || !isIdentStart(l.peekRune(1)) {
		return false
	}
	colon := false
	for _, r := range rest {
		switch {
		case r == '>':
			return colon
		case r == ':':
			colon = true
		case unicode.IsSpace(r):
			return false
		}
	}
	return false
}

func (l *lexer) number(start int) syntax.Token {
	rest := l.src[l.pos:]
	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		l.pos += 2
		for l.pos < len(l.src) && strings.ContainsRune("0123456789abcdefABCDEF", rune(l.src[l.pos])) {
			l.pos++
		}
		return l.emit(syntax.TokenInt, start)
	}
	kind := syntax.TokenInt
	for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	// "1..10" is a range, not a float
	if l.pos < len(l.src) && l.src[l.pos] == '.' && !strings.HasPrefix(l.src[l.pos:], "..") && isDigit(l.runeAt(l.pos+1)) {
		kind = syntax.TokenFloat
		l.pos++
		for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
			kind = syntax.TokenFloat
			for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	if l.pos < len(l.src) && strings.ContainsRune("fFdDlL", rune(l.src[l.pos])) {
		if l.src[l.pos] != 'l' && l.src[l.pos] != 'L' {
			kind = syntax.TokenFloat
		}
		l.pos++
	}
	return l.emit(kind, start)
}

func (l *lexer) str(start int, quote rune) syntax.Token {
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '\n' {
			break
		}
		l.pos++
		if rune(c) == quote {
			break
		}
	}
	if l.pos > len(l.src) {
		l.pos = len(l.src)
	}
	return l.emit(syntax.TokenString, start)
}
