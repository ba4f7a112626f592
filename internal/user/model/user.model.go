package model

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type User struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             *string            `json:"phone"`
	ProfilePic        *string            `json:"profilePic"`
	Bio               *string            `json:"bio"`
	ProfileComplete   bool               `json:"profileComplete"`
	Level             int                `json:"level"`
	Points            int                `json:"points"`
	Responses         int                `json:"responses"`
	Rating            float64            `json:"rating"`
	Badges            []string           `json:"badges"`
	BloodType         *string            `json:"bloodType"`
	Allergies         *string            `json:"allergies"`
	Medications       *string            `json:"medications"`
	MedicalConditions *string            `json:"medicalConditions"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	TrustedCircle     []string           `json:"trustedCircle"`
	Preferences       map[string]any     `json:"preferences"`
	CreatedAt         *string            `json:"createdAt"`
	Location          map[string]any     `json:"location"`
}

// NewUser returns a User carrying the defaults applied to omitted fields.
// Decode a request body into it to get those defaults.
func NewUser() User {
	u := User{Level: 1}
	u.FillDefaults()
	return u
}

// FillDefaults replaces nil collections with empty ones so they encode as
// [] and {} rather than null.
func (u *User) FillDefaults() {
	if u.Badges == nil {
		u.Badges = []string{}
	}
	if u.EmergencyContacts == nil {
		u.EmergencyContacts = []EmergencyContact{}
	}
	if u.TrustedCircle == nil {
		u.TrustedCircle = []string{}
	}
	if u.Preferences == nil {
		u.Preferences = map[string]any{}
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LocationUpdate struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address *string `json:"address"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	User      User   `json:"user"`
	Points    int    `json:"points"`
	Responses int    `json:"responses"`
	Change    string `json:"change"`
}
