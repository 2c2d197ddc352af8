package rules

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	size       int
	dimensions int
}

// Cache keeps recently used rule sets so their lines are enumerated once.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, *RuleSet]
}

func NewCache(capacity int) (*Cache, error) {
	entries, err := lru.New[cacheKey, *RuleSet](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules cache: %w", err)
	}

	return &Cache{entries: entries}, nil
}

func (that *Cache) Get(size, dimensions int) (*RuleSet, error) {
	key := cacheKey{size: size, dimensions: dimensions}

	if ruleSet, ok := that.entries.Get(key); ok {
		return ruleSet, nil
	}

	ruleSet, err := New(size, dimensions)
	if err != nil {
		return nil, err
	}

	that.entries.Add(key, ruleSet)

	return ruleSet, nil
}

func (that *Cache) Len() int {
	return that.entries.Len()
}
