package store

import (
	"sync"

	"safecircle/pkg/logger"
)

// Collection names owned by every Store.
const (
	Users        = "users"
	Incidents    = "incidents"
	StatusChecks = "status_checks"
)

// Store owns the users, incidents and status_checks collections and
// persists all of them through a Persister after every mutation.
//
// One mutex guards every collection together with the snapshot-and-persist
// step, so writes are applied and flushed one at a time. A caller that reads
// a document and then writes it back in a second call is not isolated from
// other writers in between.
type Store struct {
	mu        sync.Mutex
	persister Persister

	users        *Collection
	incidents    *Collection
	statusChecks *Collection
}

// New builds the collections and loads them from p. A missing snapshot
// leaves the collections empty; a load failure is logged and also leaves
// them empty. A nil p keeps data in memory only.
func New(p Persister) *Store {
	if p == nil {
		p = NewMemoryPersister()
	}
	s := &Store{persister: p}
	s.users = &Collection{name: Users, store: s}
	s.incidents = &Collection{name: Incidents, store: s}
	s.statusChecks = &Collection{name: StatusChecks, store: s}
	s.load()
	return s
}

func (s *Store) Users() *Collection        { return s.users }
func (s *Store) Incidents() *Collection    { return s.incidents }
func (s *Store) StatusChecks() *Collection { return s.statusChecks }

// Collection returns the collection called name, or nil if the store has none.
func (s *Store) Collection(name string) *Collection {
	switch name {
	case Users:
		return s.users
	case Incidents:
		return s.incidents
	case StatusChecks:
		return s.statusChecks
	}
	return nil
}

func (s *Store) load() {
	snap, err := s.persister.Load()
	if err != nil {
		logger.Sugar.Errorf("Error loading DB: %v", err)
		return
	}
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.docs = compact(snap.Users)
	s.incidents.docs = compact(snap.Incidents)
	s.statusChecks.docs = compact(snap.StatusChecks)
	logger.Sugar.Infof("Loaded %d users, %d incidents, %d status checks",
		len(s.users.docs), len(s.incidents.docs), len(s.statusChecks.docs))
}

// save writes the full snapshot. Callers must hold s.mu. Failures are
// logged; the in-memory change that triggered the save stands.
func (s *Store) save() {
	snap := &Snapshot{
		Users:        s.users.snapshot(),
		Incidents:    s.incidents.snapshot(),
		StatusChecks: s.statusChecks.snapshot(),
	}
	if err := s.persister.Save(snap); err != nil {
		logger.Sugar.Errorf("Error saving DB: %v", err)
	}
}

// Close persists a final snapshot and releases the persister.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save()
	return s.persister.Close()
}

// compact drops null entries a hand-edited snapshot may contain.
func compact(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
