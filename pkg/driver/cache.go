package driver

import (
	lru "github.com/hashicorp/golang-lru"

	"lox/interpreter-go/pkg/ast"
)

// parseCache keeps the syntax trees of recently compiled, error-free sources.
// Trees are never mutated by evaluation, so a hit can be re-executed as is.
// A nil *parseCache is a valid, always-missing cache.
type parseCache struct {
	entries *lru.Cache
}

func newParseCache(size int) (*parseCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &parseCache{entries: entries}, nil
}

func (c *parseCache) get(source string) ([]ast.Statement, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(source)
	if !ok {
		return nil, false
	}
	return v.([]ast.Statement), true
}

func (c *parseCache) add(source string, statements []ast.Statement) {
	if c == nil {
		return
	}
	c.entries.Add(source, statements)
}

func (c *parseCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
