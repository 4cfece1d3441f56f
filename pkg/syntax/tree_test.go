package syntax

import "testing"

func TestNextToken(t *testing.T) {
	tree := &Tree{
		Source: "a // c\n;",
		Tokens: []Token{
			{Kind: TokenIdentifier, Span: Range{0, 1}, Text: "a"},
			{Kind: TokenComment, Span: Range{2, 6}, Text: "// c"},
			{Kind: TokenPunct, Span: Range{7, 8}, Text: ";"},
			{Kind: TokenEOF, Span: Range{8, 8}},
		},
	}
	for name, tc := range map[string]struct {
		offset int
		want   string
		ok     bool
	}{
		"at a token":       {offset: 0, want: "a", ok: true},
		"skips comments":   {offset: 1, want: ";", ok: true},
		"inside a comment": {offset: 3, want: ";", ok: true},
		"end of input":     {offset: 8},
	} {
		t.Run(name, func(t *testing.T) {
			tok, ok := tree.NextToken(tc.offset)
			if ok != tc.ok || tok.Text != tc.want {
				t.Errorf("want %q %v, got %q %v", tc.want, tc.ok, tok.Text, ok)
			}
		})
	}
}
