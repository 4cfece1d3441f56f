package zsparse

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/collections"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

type memoEntry struct {
	sha256 string
	tree   *syntax.Tree
}

// MemoParser is a Parser frontend that reuses the previous tree of a file
// while the sha256 of its source is unchanged. Trees are never mutated after
// parsing, so a cached tree may back several units.
type MemoParser struct {
	next   Parser
	logger zerolog.Logger

	mu    sync.Mutex
	trees map[string]memoEntry
}

// NewMemoParser wraps next.
func NewMemoParser(next Parser, logger zerolog.Logger) *MemoParser {
	return &MemoParser{
		next:   next,
		logger: logger,
		trees:  make(map[string]memoEntry),
	}
}

// Parse implements Parser.
func (p *MemoParser) Parse(filename, source string) *syntax.Tree {
	sha256, err := collections.Sha256(strings.NewReader(source))
	if err != nil {
		return p.next.Parse(filename, source)
	}

	p.mu.Lock()
	entry, ok := p.trees[filename]
	p.mu.Unlock()
	if ok && entry.sha256 == sha256 {
		p.logger.Trace().Str("file", filename).Msg("parse cache hit")
		return entry.tree
	}

	tree := p.next.Parse(filename, source)

	p.mu.Lock()
	p.trees[filename] = memoEntry{sha256: sha256, tree: tree}
	p.mu.Unlock()
	p.logger.Trace().Str("file", filename).Str("sha256", sha256).Msg("parse cache save")
	return tree
}

// Forget drops the cached tree of a file.
func (p *MemoParser) Forget(filename string) {
	p.mu.Lock()
	delete(p.trees, filename)
	p.mu.Unlock()
}

// Len returns the number of cached trees.
func (p *MemoParser) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.trees)
}
