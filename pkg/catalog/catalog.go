package catalog

import (
	"fmt"

	"feed-frame/pkg/sharedTypes"
)

// Catalog maps an unbounded global index onto a finite, ordered list of media
// locators. Indexes wrap modulo the list length in both directions, so the
// feed is logically infinite no matter how far the viewer scrolls.
//
// The backing list is read-only after SetItems; Catalog itself keeps no other
// state.
type Catalog struct {
	locators []string
}

// New creates an empty catalog. ItemAt on an empty catalog returns a zero
// item; callers are expected to check IsEmpty after loading the manifest.
func New() *Catalog {
	return &Catalog{}
}

// SetItems replaces the backing content list. An empty list silently leaves
// the catalog in its empty state.
func (c *Catalog) SetItems(locators []string) {
	if len(locators) == 0 {
		c.locators = nil
		return
	}
	c.locators = append([]string(nil), locators...)
}

// IsEmpty reports whether the catalog has no content.
func (c *Catalog) IsEmpty() bool {
	return len(c.locators) == 0
}

// Len returns the number of distinct items backing the infinite feed.
func (c *Catalog) Len() int {
	return len(c.locators)
}

// ItemAt returns the content for any global index, negative included. The
// locator is list[((i % n) + n) % n]; the ID carries the global index so the
// same underlying media gets a distinct identity at every feed position.
func (c *Catalog) ItemAt(globalIndex int) sharedTypes.ContentItem {
	n := len(c.locators)
	if n == 0 {
		return sharedTypes.ContentItem{}
	}
	wrapped := ((globalIndex % n) + n) % n
	return sharedTypes.ContentItem{
		ID:      fmt.Sprintf("feed-%d", globalIndex),
		Locator: c.locators[wrapped],
	}
}
