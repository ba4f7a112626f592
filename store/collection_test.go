package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPersister records how many times the store flushed.
type countingPersister struct {
	MemoryPersister
	saves int
}

func (p *countingPersister) Save(snap *Snapshot) error {
	p.saves++
	return p.MemoryPersister.Save(snap)
}

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return New(NewFilePersister(path)), path
}

func TestInsertOneAssignsUniqueIDs(t *testing.T) {
	s := New(nil)
	users := s.Users()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		doc := Document{"name": "anon"}
		require.True(t, users.InsertOne(doc))

		id := doc.ID()
		require.NotEmpty(t, id, "identifier should be written back to the caller's document")
		assert.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
	assert.Equal(t, 50, users.CountDocuments(nil))
}

func TestInsertOneKeepsSuppliedID(t *testing.T) {
	s := New(nil)
	require.True(t, s.Users().InsertOne(Document{"id": "user1", "name": "Sarah"}))

	doc, ok := s.Users().FindOne(Filter{"id": "user1"})
	require.True(t, ok)
	assert.Equal(t, "Sarah", doc["name"])
}

func TestInsertOneRejectsNil(t *testing.T) {
	p := &countingPersister{}
	s := New(p)
	assert.False(t, s.Users().InsertOne(nil))
	assert.Equal(t, 0, p.saves)
}

func TestInsertOneRejectsUnencodable(t *testing.T) {
	p := &countingPersister{}
	s := New(p)

	doc := Document{"name": "a", "ch": make(chan int)}
	assert.False(t, s.Users().InsertOne(doc))
	assert.NotContains(t, doc, IDField)
	assert.Equal(t, 0, s.Users().CountDocuments(nil))
	assert.Equal(t, 0, p.saves)
}

func TestInsertManyRejectedBatchLeavesNoTrace(t *testing.T) {
	p := &countingPersister{}
	s := New(p)

	first := Document{"name": "a"}
	assert.False(t, s.Users().InsertMany([]Document{first, nil}))
	assert.Equal(t, 0, s.Users().CountDocuments(nil))
	assert.Equal(t, 0, p.saves)
	assert.NotContains(t, first, IDField)

	second := Document{"name": "b"}
	assert.False(t, s.Users().InsertMany([]Document{second, {"bad": func() {}}}))
	assert.Equal(t, 0, s.Users().CountDocuments(nil))
	assert.NotContains(t, second, IDField)
}

func TestInsertManyWritesBackIDs(t *testing.T) {
	s := New(nil)

	docs := []Document{{"name": "a"}, {"id": "keep", "name": "b"}}
	require.True(t, s.Users().InsertMany(docs))
	assert.NotEmpty(t, docs[0].ID())
	assert.Equal(t, "keep", docs[1].ID())

	_, ok := s.Users().FindOne(Filter{"id": docs[0].ID()})
	assert.True(t, ok)
}

func TestInsertThenFindRoundTrip(t *testing.T) {
	s := New(nil)
	doc := Document{
		"name":   "Mike Chen",
		"email":  "mike@safecircle.com",
		"points": float64(680),
		"badges": []any{"first-responder", "lifesaver"},
		"preferences": map[string]any{
			"alertRadius": float64(1500),
			"silentMode":  false,
		},
	}
	require.True(t, s.Users().InsertOne(doc))

	found, ok := s.Users().FindOne(Filter{"email": "mike@safecircle.com", "points": 680})
	require.True(t, ok)
	assert.Equal(t, doc, found)
}

func TestFindOneNotFound(t *testing.T) {
	s := New(nil)
	s.Users().InsertOne(Document{"email": "a@b.c"})

	doc, ok := s.Users().FindOne(Filter{"email": "nobody@b.c"})
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestFindOneReturnsFirstInStoredOrder(t *testing.T) {
	s := New(nil)
	s.Users().InsertMany([]Document{
		{"id": "a", "role": "helper"},
		{"id": "b", "role": "helper"},
	})

	doc, ok := s.Users().FindOne(Filter{"role": "helper"})
	require.True(t, ok)
	assert.Equal(t, "a", doc.ID())
}

func TestMatchingIsConjunctiveAndTypeSensitive(t *testing.T) {
	s := New(nil)
	c := s.StatusChecks()
	c.InsertMany([]Document{
		{"id": "1", "n": 1, "tag": "x"},
		{"id": "2", "n": "1", "tag": "x"},
		{"id": "3", "n": 1, "tag": "X"},
	})

	assert.Equal(t, 2, c.CountDocuments(Filter{"n": 1}))
	assert.Equal(t, 1, c.CountDocuments(Filter{"n": "1"}))
	assert.Equal(t, 1, c.CountDocuments(Filter{"n": 1, "tag": "x"}))
	assert.Equal(t, 0, c.CountDocuments(Filter{"n": 1, "missing": nil}))
}

func TestUpdateOneMergesFields(t *testing.T) {
	s := New(nil)
	s.Users().InsertOne(Document{"id": "u1", "a": "y", "b": "z"})

	res := s.Users().UpdateOne(Filter{"id": "u1"}, Update{Set: Document{"a": "x"}})
	assert.Equal(t, 1, res.ModifiedCount)

	doc, ok := s.Users().FindOne(Filter{"id": "u1"})
	require.True(t, ok)
	assert.Equal(t, Document{"id": "u1", "a": "x", "b": "z"}, doc)
}

func TestUpdateOneOnlyTouchesFirstMatch(t *testing.T) {
	s := New(nil)
	s.Incidents().InsertMany([]Document{
		{"id": "i1", "status": "active"},
		{"id": "i2", "status": "active"},
	})

	s.Incidents().UpdateOne(Filter{"status": "active"}, Update{Set: Document{"status": "resolved"}})

	assert.Equal(t, 1, s.Incidents().CountDocuments(Filter{"status": "resolved"}))
	doc, _ := s.Incidents().FindOne(Filter{"id": "i2"})
	assert.Equal(t, "active", doc["status"])
}

func TestUpdateOneNoMatchIsNoop(t *testing.T) {
	s, path := newFileStore(t)
	s.Users().InsertOne(Document{"id": "u1", "name": "Sarah"})

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	res := s.Users().UpdateOne(Filter{"id": "ghost"}, Update{Set: Document{"name": "Nobody"}})
	assert.Equal(t, 0, res.ModifiedCount)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCountDocuments(t *testing.T) {
	s := New(nil)
	assert.Equal(t, 0, s.Users().CountDocuments(Filter{}))

	s.Users().InsertMany([]Document{
		{"level": 1}, {"level": 2}, {"level": 1},
	})
	assert.Equal(t, 3, s.Users().CountDocuments(Filter{}))
	assert.Equal(t, 2, s.Users().CountDocuments(Filter{"level": 1}))
	assert.Equal(t, 0, s.Users().CountDocuments(Filter{"level": 9}))
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	s := New(nil)
	s.Users().InsertOne(Document{"id": "u1", "badges": []any{"a"}})

	doc, _ := s.Users().FindOne(Filter{"id": "u1"})
	doc["name"] = "mutated"
	doc["badges"].([]any)[0] = "mutated"

	again, _ := s.Users().FindOne(Filter{"id": "u1"})
	assert.NotContains(t, again, "name")
	assert.Equal(t, []any{"a"}, again["badges"])
}

func TestInsertedDocumentIsDetachedFromCaller(t *testing.T) {
	s := New(nil)
	doc := Document{"id": "u1", "name": "before"}
	s.Users().InsertOne(doc)
	doc["name"] = "after"

	stored, _ := s.Users().FindOne(Filter{"id": "u1"})
	assert.Equal(t, "before", stored["name"])
}

func TestPersistenceTiming(t *testing.T) {
	p := &countingPersister{}
	s := New(p)

	s.Users().InsertOne(Document{"n": 1})
	s.Users().InsertOne(Document{"n": 2})
	assert.Equal(t, 2, p.saves, "insert_one persists per call")

	s.Users().InsertMany([]Document{{"n": 3}, {"n": 4}, {"n": 5}})
	assert.Equal(t, 3, p.saves, "insert_many persists once")

	s.Users().UpdateOne(Filter{"n": 99}, Update{Set: Document{"x": 1}})
	assert.Equal(t, 3, p.saves, "no match, no persist")

	s.Users().UpdateOne(Filter{"n": 1}, Update{Set: Document{"x": 1}})
	assert.Equal(t, 4, p.saves)

	require.NoError(t, s.Close())
	assert.Equal(t, 5, p.saves, "close persists a final snapshot")
}
