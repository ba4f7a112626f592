package store

import "safecircle/pkg/logger"

// Update describes a partial update. Each field in Set replaces the
// corresponding field of the matched document; other fields are untouched.
type Update struct {
	Set Document
}

// UpdateResult reports how many documents an update modified (0 or 1).
type UpdateResult struct {
	ModifiedCount int
}

// Collection is a named, insertion-ordered sequence of documents.
// All collections of a Store share its lock.
type Collection struct {
	name  string
	store *Store
	docs  []Document
}

func (c *Collection) Name() string {
	return c.name
}

// InsertOne stores doc, assigning a fresh identifier when it has none.
// The assigned identifier is written back to doc once the insert is
// accepted. It reports false only when doc is nil or cannot be encoded as
// JSON, in which case doc is left untouched.
func (c *Collection) InsertOne(doc Document) bool {
	norm, ok := c.prepare(doc)
	if !ok {
		return false
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.docs = append(c.docs, norm)
	c.store.save()
	assignID(doc, norm)
	return true
}

// InsertMany stores every document and persists once at the end.
// Nothing is inserted, and no caller document is modified, if any
// document is nil or cannot be encoded.
func (c *Collection) InsertMany(docs []Document) bool {
	norms := make([]Document, 0, len(docs))
	for _, doc := range docs {
		norm, ok := c.prepare(doc)
		if !ok {
			return false
		}
		norms = append(norms, norm)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.docs = append(c.docs, norms...)
	c.store.save()
	for i, doc := range docs {
		assignID(doc, norms[i])
	}
	return true
}

// prepare returns the normalized copy of doc that will be stored, with an
// identifier generated when doc has none.
func (c *Collection) prepare(doc Document) (Document, bool) {
	if doc == nil {
		return nil, false
	}
	norm, err := normalizeDocument(doc)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert into %s: %v", c.name, err)
		return nil, false
	}
	if _, ok := norm[IDField]; !ok {
		norm[IDField] = newID()
	}
	return norm, true
}

// assignID copies a generated identifier back to the caller's document.
func assignID(doc, norm Document) {
	if _, ok := doc[IDField]; !ok {
		doc[IDField] = norm[IDField]
	}
}

// FindOne returns a copy of the first document, in stored order, that
// matches filter. The boolean is false when nothing matches.
func (c *Collection) FindOne(filter Filter) (Document, bool) {
	f := normalizeFilter(filter)

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if i := c.indexOf(f); i >= 0 {
		return c.docs[i].clone(), true
	}
	return nil, false
}

// Find captures every matching document now and returns a cursor over
// them. Later writes to the collection are not visible through the cursor.
func (c *Collection) Find(filter Filter) *Cursor {
	f := normalizeFilter(filter)

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var matched []Document
	for _, doc := range c.docs {
		if doc.matches(f) {
			matched = append(matched, doc.clone())
		}
	}
	return &Cursor{docs: matched}
}

// UpdateOne merges update.Set into the first matching document and
// persists. When nothing matches it neither modifies nor persists.
func (c *Collection) UpdateOne(filter Filter, update Update) UpdateResult {
	f := normalizeFilter(filter)
	set := Document{}
	if update.Set != nil {
		var err error
		if set, err = normalizeDocument(update.Set); err != nil {
			logger.Sugar.Errorf("Failed to update %s: %v", c.name, err)
			return UpdateResult{}
		}
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	i := c.indexOf(f)
	if i < 0 {
		return UpdateResult{}
	}
	for k, v := range set {
		c.docs[i][k] = v
	}
	c.store.save()
	return UpdateResult{ModifiedCount: 1}
}

// CountDocuments returns the number of documents matching filter; an empty
// filter counts the whole collection.
func (c *Collection) CountDocuments(filter Filter) int {
	f := normalizeFilter(filter)

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if len(f) == 0 {
		return len(c.docs)
	}
	n := 0
	for _, doc := range c.docs {
		if doc.matches(f) {
			n++
		}
	}
	return n
}

func (c *Collection) indexOf(f Filter) int {
	for i, doc := range c.docs {
		if doc.matches(f) {
			return i
		}
	}
	return -1
}

// snapshot returns the stored documents; callers must hold the store lock.
func (c *Collection) snapshot() []Document {
	if c.docs == nil {
		return []Document{}
	}
	return c.docs
}
