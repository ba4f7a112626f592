// Package store is an embedded document store: named collections of
// JSON-shaped documents with equality queries, sortable cursors and
// whole-snapshot persistence.
package store

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// IDField is the identifier field of every document.
const IDField = "id"

// Document is one record: an open mapping of field name to value.
// Values are float64, string, bool, nil, map[string]any or []any.
type Document map[string]any

// Filter is a set of equality predicates. A document matches when every
// listed field is present and equal.
type Filter map[string]any

// ID returns the document identifier, or "" when absent or not a string.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

func newID() string {
	return uuid.NewString()
}

// normalize converts v into the canonical shape documents are stored in
// by round-tripping it through JSON.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeDocument(doc Document) (Document, error) {
	v, err := normalize(map[string]any(doc))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document encodes to %T, not an object", v)
	}
	return Document(m), nil
}

// normalizeFilter brings query values into document shape so that an int
// literal in Go code matches a stored float64. Values that cannot be
// encoded are kept as-is and will simply never match.
func normalizeFilter(f Filter) Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		if n, err := normalize(v); err == nil {
			out[k] = n
		} else {
			out[k] = v
		}
	}
	return out
}

func (d Document) matches(f Filter) bool {
	for k, want := range f {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// clone deep-copies a normalized document.
func (d Document) clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Document:
		return map[string]any(t.clone())
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// Sort classes: numbers (a missing field counts as 0) < strings < bools < everything else.
const (
	rankNumber = iota
	rankString
	rankBool
	rankOther
)

func sortRank(v any) int {
	switch v.(type) {
	case nil, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return rankNumber
	case string:
		return rankString
	case bool:
		return rankBool
	default:
		return rankOther
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

func compareValues(a, b any) int {
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		return cmp.Compare(toFloat(a), toFloat(b))
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	return 0
}
