package service

import (
	"errors"
	"strings"

	"safecircle/internal/user/model"
	"safecircle/internal/user/repository"
)

// LeaderboardSize is the number of users shown on the leaderboard.
const LeaderboardSize = 10

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrUserNotUpdated     = errors.New("User not found or no changes made")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingFields      = errors.New("name and email are required")
	ErrUserIDTaken        = errors.New("User id already in use")
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) ListUsers() []model.User {
	return s.Repo.List()
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) CreateUser(u model.User) (*model.User, error) {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
		return nil, ErrMissingFields
	}
	u.FillDefaults()
	if err := s.Repo.Create(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser merges fields into the user and returns the stored result.
// Renaming a user to an id another user already holds is rejected.
func (s *UserService) UpdateUser(id string, fields map[string]any) (*model.User, error) {
	newID, renamed := fields["id"].(string)
	if renamed && newID != id {
		other, err := s.Repo.GetByID(newID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrUserIDTaken
		}
	}

	if s.Repo.Update(id, fields) == 0 {
		return nil, ErrUserNotUpdated
	}
	if renamed {
		id = newID
	}
	return s.GetUser(id)
}

// UpdateLocation sets the user's last known location. An unknown user is
// not an error.
func (s *UserService) UpdateLocation(id string, loc model.LocationUpdate) {
	s.Repo.Update(id, map[string]any{
		"location": map[string]any{
			"lat":     loc.Lat,
			"lng":     loc.Lng,
			"address": loc.Address,
		},
	})
}

// Login looks a user up by email. The password is not checked.
func (s *UserService) Login(req model.LoginRequest) (*model.User, error) {
	u, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Leaderboard() []model.LeaderboardEntry {
	users := s.Repo.TopByPoints(LeaderboardSize)
	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			Rank:      i + 1,
			User:      u,
			Points:    u.Points,
			Responses: u.Responses,
			Change:    "0",
		})
	}
	return entries
}
