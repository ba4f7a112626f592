package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func seedPoints(t *testing.T, s *Store, points ...any) {
	t.Helper()
	docs := make([]Document, len(points))
	for i, p := range points {
		docs[i] = Document{"id": string(rune('a' + i))}
		if p != nil {
			docs[i]["points"] = p
		}
	}
	require.True(t, s.Users().InsertMany(docs))
}

func TestCursorSortAndLimit(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 10, 50, 30)

	got := s.Users().Find(Filter{}).Sort("points", Descending).Limit(2).ToList(0)
	require.Len(t, got, 2)
	assert.Equal(t, float64(50), got[0]["points"])
	assert.Equal(t, float64(30), got[1]["points"])
}

func TestCursorStricterBoundWins(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 1, 2, 3, 4, 5)

	assert.Len(t, s.Users().Find(nil).Limit(3).ToList(1), 1)
	assert.Len(t, s.Users().Find(nil).Limit(1).ToList(3), 1)
	assert.Len(t, s.Users().Find(nil).Limit(3).ToList(0), 3)
	assert.Len(t, s.Users().Find(nil).ToList(4), 4)
	assert.Len(t, s.Users().Find(nil).ToList(0), 5)
}

func TestCursorAscendingWithMissingFieldAsZero(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 5, nil, -3, 2)

	got := s.Users().Find(nil).Sort("points", Ascending).ToList(0)
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids(got))
}

func TestCursorSortIsStable(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 1, 2, 1, 2)

	asc := s.Users().Find(nil).Sort("points", Ascending).ToList(0)
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(asc))

	desc := s.Users().Find(nil).Sort("points", Descending).ToList(0)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(desc))
}

func TestCursorSortOverwritesKey(t *testing.T) {
	s := New(nil)
	s.Users().InsertMany([]Document{
		{"id": "a", "points": 1, "name": "zed"},
		{"id": "b", "points": 2, "name": "amy"},
	})

	got := s.Users().Find(nil).Sort("points", Descending).Sort("name", Ascending).ToList(0)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestCursorMixedTypes(t *testing.T) {
	s := New(nil)
	s.Users().InsertMany([]Document{
		{"id": "bool", "v": true},
		{"id": "str", "v": "abc"},
		{"id": "num", "v": 7},
	})

	got := s.Users().Find(nil).Sort("v", Ascending).ToList(0)
	assert.Equal(t, []string{"num", "str", "bool"}, ids(got))
}

func TestCursorDoesNotReorderCollection(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 3, 1, 2)

	s.Users().Find(nil).Sort("points", Ascending).ToList(0)

	assert.Equal(t, []string{"a", "b", "c"}, ids(s.Users().Find(nil).ToList(0)))
}

func TestCursorToListIsIdempotent(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 3, 1, 2)

	cur := s.Users().Find(nil).Sort("points", Descending).Limit(2)
	first := cur.ToList(0)
	first[0]["points"] = 1000

	assert.Equal(t, cur.ToList(0)[0]["points"], float64(3))
	assert.Equal(t, ids(cur.ToList(0)), []string{"a", "c"})
}

func TestCursorCapturesMatchesAtFindTime(t *testing.T) {
	s := New(nil)
	seedPoints(t, s, 1, 2)

	cur := s.Users().Find(Filter{})
	s.Users().InsertOne(Document{"id": "late", "points": 3})
	s.Users().UpdateOne(Filter{"id": "a"}, Update{Set: Document{"points": 100}})

	got := cur.ToList(0)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, float64(1), got[0]["points"])
}

func TestCursorEmpty(t *testing.T) {
	s := New(nil)
	got := s.Users().Find(Filter{"id": "none"}).Sort("points", Descending).Limit(10).ToList(10)
	assert.Empty(t, got)
}
