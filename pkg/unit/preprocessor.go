package unit

import (
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

// Preprocessor is a '#' directive such as "#priority 10" or "#loader
// contenttweaker".
type Preprocessor struct {
	Name string
	Args []string
	Span syntax.Range
}

// Preprocessors returns the directives of the unit in source order.
func (u *Unit) Preprocessors() []Preprocessor {
	var out []Preprocessor
	for _, tok := range u.Tokens() {
		if tok.Kind != syntax.TokenPreprocessor {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(tok.Text, "#"))
		if len(fields) == 0 {
			continue
		}
		out = append(out, Preprocessor{
			Name: fields[0],
			Args: fields[1:],
			Span: tok.Span,
		})
	}
	return out
}
