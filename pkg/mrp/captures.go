package mrp

import "strconv"

type capture struct {
	key   string
	value string
}

// Captures associates capture names and ordinals with the substrings they
// matched during a single match attempt. A fresh store is built per attempt
// and never shared across inputs. Lookups are linear scans, which is fine
// for the single-digit group counts typical of rename patterns.
type Captures struct {
	entries []capture
}

// Put records value under key. An existing entry with the same key is
// overwritten: a restarted match attempt must not leave a stale value behind.
func (c *Captures) Put(key, value string) {
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries[i].value = value
			return
		}
	}
	c.entries = append(c.entries, capture{key: key, value: value})
}

// Get returns the substring captured under the given name.
func (c *Captures) Get(name string) (string, bool) {
	for _, e := range c.entries {
		if e.key == name {
			return e.value, true
		}
	}
	return "", false
}

// GetOrdinal returns the substring captured by the n-th anonymous capture,
// 1-based.
func (c *Captures) GetOrdinal(n int) (string, bool) {
	return c.Get(strconv.Itoa(n))
}

// Len reports how many captures were recorded.
func (c *Captures) Len() int {
	return len(c.entries)
}
