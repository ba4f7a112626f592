package store

import "slices"

// SortOrder is the direction of a cursor sort.
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

// Cursor is a pending read over the documents captured by Find. Sort and
// Limit only record settings; ToList applies them.
type Cursor struct {
	docs    []Document
	sortKey string
	order   SortOrder
	limit   int
}

// Sort orders results by a single field. Calling it again replaces the
// previous key and order.
func (c *Cursor) Sort(key string, order SortOrder) *Cursor {
	c.sortKey = key
	c.order = order
	return c
}

// Limit caps the number of results kept after sorting. n <= 0 means no limit.
func (c *Cursor) Limit(n int) *Cursor {
	c.limit = n
	return c
}

// ToList materializes the cursor: sort a copy of the captured documents,
// apply the cursor limit, then cap to length (length <= 0 means no cap).
// The stricter of the two bounds wins. Repeated calls return equal results.
func (c *Cursor) ToList(length int) []Document {
	result := make([]Document, len(c.docs))
	for i, doc := range c.docs {
		result[i] = doc.clone()
	}

	if c.sortKey != "" {
		key, desc := c.sortKey, c.order == Descending
		slices.SortStableFunc(result, func(a, b Document) int {
			n := compareValues(a[key], b[key])
			if desc {
				return -n
			}
			return n
		})
	}

	if c.limit > 0 && len(result) > c.limit {
		result = result[:c.limit]
	}
	if length > 0 && len(result) > length {
		result = result[:length]
	}
	return result
}
