package repository

import (
	"errors"

	"safecircle/internal/incident/model"
	"safecircle/pkg/logger"
	"safecircle/store"
)

const ListLimit = 1000

var ErrInsertFailed = errors.New("failed to insert incident")

type IncidentRepository struct {
	Incidents *store.Collection
}

func NewIncidentRepository(s *store.Store) *IncidentRepository {
	return &IncidentRepository{Incidents: s.Incidents()}
}

func (r *IncidentRepository) List() []model.Incident {
	docs := r.Incidents.Find(store.Filter{}).ToList(ListLimit)
	incidents := make([]model.Incident, 0, len(docs))
	for _, doc := range docs {
		inc, err := decodeIncident(doc)
		if err != nil {
			logger.Sugar.Warnf("Skipping malformed incident %s: %v", doc.ID(), err)
			continue
		}
		incidents = append(incidents, *inc)
	}
	return incidents
}

// GetByID returns nil when no incident has that id.
func (r *IncidentRepository) GetByID(id string) (*model.Incident, error) {
	doc, ok := r.Incidents.FindOne(store.Filter{"id": id})
	if !ok {
		return nil, nil
	}
	inc, err := decodeIncident(doc)
	if err != nil {
		logger.Sugar.Errorf("Failed to decode incident %s: %v", id, err)
		return nil, err
	}
	return inc, nil
}

// Create stores inc. An empty ID is assigned by the store and written back.
func (r *IncidentRepository) Create(inc *model.Incident) error {
	doc, err := store.FromStruct(inc)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode incident: %v", err)
		return err
	}
	if inc.ID == "" {
		delete(doc, store.IDField)
	}
	if !r.Incidents.InsertOne(doc) {
		return ErrInsertFailed
	}
	inc.ID = doc.ID()
	return nil
}

// Set merges fields into the incident and reports whether it exists.
func (r *IncidentRepository) Set(id string, fields map[string]any) bool {
	return r.Incidents.UpdateOne(store.Filter{"id": id}, store.Update{Set: fields}).ModifiedCount == 1
}

func (r *IncidentRepository) Count() int {
	return r.Incidents.CountDocuments(store.Filter{})
}

func decodeIncident(doc store.Document) (*model.Incident, error) {
	inc := model.NewIncident()
	if err := doc.Decode(&inc); err != nil {
		return nil, err
	}
	inc.FillDefaults()
	return &inc, nil
}
