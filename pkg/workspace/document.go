package workspace

import (
	"sync"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// document guards one unit. Readers (resolution, environment harvesting)
// share it; a re-parse swaps in a new unit while holding it exclusively.
type document struct {
	mu   sync.RWMutex
	unit *unit.Unit
}

func newDocument(u *unit.Unit) *document {
	return &document{unit: u}
}

// contributes reports whether the unit exports anything into the
// environment.
func contributes(u *unit.Unit) bool {
	if u.IsGenerated() {
		return true
	}
	for _, sym := range u.TopLevelSymbols() {
		switch s := sym.(type) {
		case *symbol.ImportSymbol:
			continue
		case *symbol.ClassSymbol:
			return true
		case *symbol.FunctionSymbol:
			return true
		default:
			if s.Modifiers().Has(symbol.ModGlobal) || s.Modifiers().Has(symbol.ModStatic) {
				return true
			}
		}
	}
	return false
}
