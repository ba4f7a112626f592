package repository

import (
	"errors"

	"safecircle/internal/user/model"
	"safecircle/pkg/logger"
	"safecircle/store"
)

// ListLimit caps list endpoints, like a to_list(1000) on the cursor.
const ListLimit = 1000

var ErrInsertFailed = errors.New("failed to insert user")

type UserRepository struct {
	Users *store.Collection
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{Users: s.Users()}
}

func (r *UserRepository) List() []model.User {
	return decodeUsers(r.Users.Find(store.Filter{}).ToList(ListLimit))
}

// GetByID returns nil when no user has that id.
func (r *UserRepository) GetByID(id string) (*model.User, error) {
	return r.findOne(store.Filter{"id": id})
}

// GetByEmail returns nil when no user has that email.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	return r.findOne(store.Filter{"email": email})
}

// Create stores u. An empty ID is assigned by the store and written back to u.
func (r *UserRepository) Create(u *model.User) error {
	doc, err := store.FromStruct(u)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode user %s: %v", u.Email, err)
		return err
	}
	if u.ID == "" {
		delete(doc, store.IDField)
	}
	if !r.Users.InsertOne(doc) {
		return ErrInsertFailed
	}
	u.ID = doc.ID()
	return nil
}

// Update merges fields into the user and returns the number of modified users.
func (r *UserRepository) Update(id string, fields map[string]any) int {
	res := r.Users.UpdateOne(store.Filter{"id": id}, store.Update{Set: fields})
	return res.ModifiedCount
}

// TopByPoints returns at most n users ordered by points, highest first.
func (r *UserRepository) TopByPoints(n int) []model.User {
	docs := r.Users.Find(store.Filter{}).Sort("points", store.Descending).Limit(n).ToList(n)
	return decodeUsers(docs)
}

func (r *UserRepository) Count() int {
	return r.Users.CountDocuments(store.Filter{})
}

func (r *UserRepository) findOne(filter store.Filter) (*model.User, error) {
	doc, ok := r.Users.FindOne(filter)
	if !ok {
		return nil, nil
	}
	u := model.NewUser()
	if err := doc.Decode(&u); err != nil {
		logger.Sugar.Errorf("Failed to decode user %s: %v", doc.ID(), err)
		return nil, err
	}
	u.FillDefaults()
	return &u, nil
}

func decodeUsers(docs []store.Document) []model.User {
	users := make([]model.User, 0, len(docs))
	for _, doc := range docs {
		u := model.NewUser()
		if err := doc.Decode(&u); err != nil {
			logger.Sugar.Warnf("Skipping malformed user %s: %v", doc.ID(), err)
			continue
		}
		u.FillDefaults()
		users = append(users, u)
	}
	return users
}
