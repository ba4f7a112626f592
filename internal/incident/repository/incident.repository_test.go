package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safecircle/internal/incident/model"
	"safecircle/store"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewIncidentRepository(store.New(nil))

	inc := model.NewIncident()
	inc.Type = "Medical"
	inc.Victim.ID = "user1"
	inc.Location = map[string]any{"lat": 1.0, "lng": 2.0}
	require.NoError(t, repo.Create(&inc))
	assert.NotEmpty(t, inc.ID)

	got, err := repo.GetByID(inc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inc, *got)
	assert.Equal(t, 1, repo.Count())
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewIncidentRepository(store.New(nil))

	got, err := repo.GetByID("ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSet(t *testing.T) {
	s := store.New(nil)
	repo := NewIncidentRepository(s)
	require.True(t, s.Incidents().InsertOne(store.Document{"id": "i1", "type": "Other", "status": "active"}))

	assert.True(t, repo.Set("i1", map[string]any{"status": "resolved"}))
	assert.False(t, repo.Set("i2", map[string]any{"status": "resolved"}))

	got, err := repo.GetByID("i1")
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)
	assert.Equal(t, "Other", got.Type)
	assert.Equal(t, []model.ChatMessage{}, got.ChatMessages)
}

func TestListSkipsMalformed(t *testing.T) {
	s := store.New(nil)
	repo := NewIncidentRepository(s)
	require.True(t, s.Incidents().InsertMany([]store.Document{
		{"id": "i1", "type": "Other"},
		{"id": "i2", "type": []any{"not", "a", "string"}},
	}))

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "i1", list[0].ID)
}
