package fspath

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders paths with the collation of one locale. It is safe for
// concurrent use.
type Collator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewCollator returns a collator for the BCP 47 tag. Empty or unknown tags
// use the root collation.
func NewCollator(tag string) *Collator {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Und
	}
	return &Collator{c: collate.New(lang)}
}

// Compare orders two paths by their full text. A nil collator uses the root
// collation.
func (c *Collator) Compare(a, b Path) int {
	if c == nil {
		return NewCollator("").Compare(a, b)
	}
	c.mu.Lock()
	res := c.c.CompareString(a.Full, b.Full)
	c.mu.Unlock()
	if res != 0 {
		return res
	}
	// Collation can treat distinct strings as equal; keep the order total.
	switch {
	case a.Full < b.Full:
		return -1
	case a.Full > b.Full:
		return 1
	}
	return 0
}
