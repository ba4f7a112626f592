package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safecircle/internal/user/model"
	"safecircle/store"
)

func TestCreateAssignsID(t *testing.T) {
	repo := NewUserRepository(store.New(nil))

	u := model.NewUser()
	u.Name, u.Email = "Ava", "ava@safecircle.com"
	require.NoError(t, repo.Create(&u))
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail("ava@safecircle.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewUserRepository(store.New(nil))

	got, err := repo.GetByID("nobody")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListSkipsMalformedUsers(t *testing.T) {
	s := store.New(nil)
	repo := NewUserRepository(s)

	require.True(t, s.Users().InsertMany([]store.Document{
		{"id": "ok", "name": "Fine", "points": 3},
		{"id": "bad", "name": 42},
	}))

	users := repo.List()
	require.Len(t, users, 1)
	assert.Equal(t, "ok", users[0].ID)
	assert.Equal(t, []string{}, users[0].Badges)
}

func TestTopByPoints(t *testing.T) {
	s := store.New(nil)
	repo := NewUserRepository(s)

	require.True(t, s.Users().InsertMany([]store.Document{
		{"id": "a", "points": 5},
		{"id": "b", "points": 50},
		{"id": "c"},
		{"id": "d", "points": 20},
	}))

	top := repo.TopByPoints(3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"b", "d", "a"}, []string{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, 4, repo.Count())
}

func TestUpdate(t *testing.T) {
	s := store.New(nil)
	repo := NewUserRepository(s)
	require.True(t, s.Users().InsertOne(store.Document{"id": "a", "name": "A"}))

	assert.Equal(t, 1, repo.Update("a", map[string]any{"bio": "hi"}))
	assert.Equal(t, 0, repo.Update("z", map[string]any{"bio": "hi"}))

	u, err := repo.GetByID("a")
	require.NoError(t, err)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "hi", *u.Bio)
	assert.Equal(t, "A", u.Name)
}
