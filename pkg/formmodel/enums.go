package formmodel

import "sync"

type enumKey struct {
	section  string
	property string
}

// EnumCache owns enumeration lists resolved asynchronously from keyword
// services. The slice builder consults it when assembling per-section
// schemas, so fetched options surface on the next render without mutating
// the shared full schema in place.
type EnumCache struct {
	mu     sync.RWMutex
	values map[enumKey][]string
}

// NewEnumCache returns an empty cache.
func NewEnumCache() *EnumCache {
	return &EnumCache{values: make(map[enumKey][]string)}
}

// Set records the resolved enumeration for a (section, property) pair,
// replacing any previous value.
func (c *EnumCache) Set(section, property string, values []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[enumKey{section: section, property: property}] = append([]string(nil), values...)
}

// Get returns the cached enumeration for a (section, property) pair.
func (c *EnumCache) Get(section, property string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	values, ok := c.values[enumKey{section: section, property: property}]
	if !ok {
		return nil, false
	}
	return append([]string(nil), values...), true
}
