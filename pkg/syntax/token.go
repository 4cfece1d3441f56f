package syntax

// TokenKind classifies lexical tokens.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenKeyword
	TokenInt
	TokenFloat
	TokenString
	TokenBracketHandler
	TokenPunct
	TokenComment
	TokenPreprocessor
	TokenInvalid
)

// Token is a lexical token in the token stream of a parsed file.
type Token struct {
	Kind TokenKind
	Span Range
	Text string
}

// Is reports whether the token is a keyword or punctuation with the given
// text.
func (t Token) Is(text string) bool {
	return (t.Kind == TokenKeyword || t.Kind == TokenPunct) && t.Text == text
}
