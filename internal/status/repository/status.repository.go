package repository

import (
	"errors"

	"safecircle/internal/status/model"
	"safecircle/pkg/logger"
	"safecircle/store"
)

const ListLimit = 1000

var ErrInsertFailed = errors.New("failed to insert status check")

type StatusRepository struct {
	Checks *store.Collection
}

func NewStatusRepository(s *store.Store) *StatusRepository {
	return &StatusRepository{Checks: s.StatusChecks()}
}

func (r *StatusRepository) Create(c model.StatusCheck) error {
	doc, err := store.FromStruct(c)
	if err != nil {
		return err
	}
	if !r.Checks.InsertOne(doc) {
		return ErrInsertFailed
	}
	return nil
}

func (r *StatusRepository) List() []model.StatusCheck {
	docs := r.Checks.Find(store.Filter{}).ToList(ListLimit)
	checks := make([]model.StatusCheck, 0, len(docs))
	for _, doc := range docs {
		var c model.StatusCheck
		if err := doc.Decode(&c); err != nil {
			logger.Sugar.Warnf("Skipping malformed status check %s: %v", doc.ID(), err)
			continue
		}
		checks = append(checks, c)
	}
	return checks
}
