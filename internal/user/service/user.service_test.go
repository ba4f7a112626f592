package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safecircle/internal/seed"
	"safecircle/internal/user/model"
	"safecircle/internal/user/repository"
	"safecircle/store"
)

func newSeededService(t *testing.T) (*UserService, *store.Store) {
	t.Helper()
	s := store.New(nil)
	seed.Run(s)
	return NewUserService(repository.NewUserRepository(s)), s
}

func TestLeaderboardOrdersByPoints(t *testing.T) {
	svc, _ := newSeededService(t)

	board := svc.Leaderboard()
	require.Len(t, board, 5)

	var ids []string
	for i, e := range board {
		assert.Equal(t, i+1, e.Rank)
		assert.Equal(t, e.User.Points, e.Points)
		assert.Equal(t, e.User.Responses, e.Responses)
		assert.Equal(t, "0", e.Change)
		ids = append(ids, e.User.ID)
	}
	assert.Equal(t, []string{"user4", "user5", "user2", "user1", "user3"}, ids)
}

func TestLeaderboardCapsAtTen(t *testing.T) {
	svc, _ := newSeededService(t)
	for i := 0; i < 12; i++ {
		_, err := svc.CreateUser(model.User{Name: "Extra", Email: "extra@safecircle.com", Points: 10000 + i})
		require.NoError(t, err)
	}

	board := svc.Leaderboard()
	require.Len(t, board, LeaderboardSize)
	assert.Equal(t, 10011, board[0].Points)
}

func TestLogin(t *testing.T) {
	svc, _ := newSeededService(t)

	u, err := svc.Login(model.LoginRequest{Email: "mike@safecircle.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "user2", u.ID)

	_, err = svc.Login(model.LoginRequest{Email: "MIKE@safecircle.com"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserAppliesDefaultsAndAssignsID(t *testing.T) {
	svc, s := newSeededService(t)

	req := model.NewUser()
	req.Name = "New Helper"
	req.Email = "new@safecircle.com"
	u, err := svc.CreateUser(req)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, []string{}, u.Badges)

	doc, ok := s.Users().FindOne(store.Filter{"email": "new@safecircle.com"})
	require.True(t, ok)
	assert.Equal(t, u.ID, doc.ID())
	assert.Equal(t, float64(1), doc["level"])
}

func TestCreateUserRequiresNameAndEmail(t *testing.T) {
	svc, _ := newSeededService(t)
	_, err := svc.CreateUser(model.User{Name: "No Email"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateUserMergesFields(t *testing.T) {
	svc, _ := newSeededService(t)

	u, err := svc.UpdateUser("user3", map[string]any{"bio": "Updated bio", "points": 300})
	require.NoError(t, err)
	assert.Equal(t, "Updated bio", *u.Bio)
	assert.Equal(t, 300, u.Points)
	assert.Equal(t, "Emma Wilson", u.Name)
	assert.Equal(t, "B+", *u.BloodType)

	_, err = svc.UpdateUser("ghost", map[string]any{"bio": "x"})
	assert.ErrorIs(t, err, ErrUserNotUpdated)
}

func TestUpdateUserRejectsTakenID(t *testing.T) {
	svc, s := newSeededService(t)

	_, err := svc.UpdateUser("user1", map[string]any{"id": "user2"})
	assert.ErrorIs(t, err, ErrUserIDTaken)
	assert.Equal(t, 1, s.Users().CountDocuments(store.Filter{"id": "user2"}))
	assert.Equal(t, 1, s.Users().CountDocuments(store.Filter{"id": "user1"}))

	// Keeping the same id, or moving to a free one, is fine.
	u, err := svc.UpdateUser("user1", map[string]any{"id": "user1", "bio": "same"})
	require.NoError(t, err)
	assert.Equal(t, "same", *u.Bio)

	u, err = svc.UpdateUser("user1", map[string]any{"id": "user9"})
	require.NoError(t, err)
	assert.Equal(t, "user9", u.ID)
	assert.Equal(t, "Sarah Johnson", u.Name)
}

func TestUpdateLocation(t *testing.T) {
	svc, _ := newSeededService(t)

	addr := "Main Library"
	svc.UpdateLocation("user1", model.LocationUpdate{Lat: 37.77, Lng: -122.41, Address: &addr})
	svc.UpdateLocation("ghost", model.LocationUpdate{Lat: 1, Lng: 2})

	u, err := svc.GetUser("user1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"lat": 37.77, "lng": -122.41, "address": "Main Library"}, u.Location)

	_, err = svc.GetUser("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
