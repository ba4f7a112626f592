// Package seed fills an empty store with demo users and incidents.
package seed

import (
	"time"

	"safecircle/pkg/logger"
	"safecircle/store"
)

// Run seeds users when the users collection is empty, then incidents when
// that collection is empty too. Incidents are only seeded alongside users so
// their victims and helpers exist.
func Run(s *store.Store) {
	if s.Users().CountDocuments(store.Filter{}) != 0 {
		return
	}
	logger.Sugar.Info("Seeding users...")
	users := MockUsers()
	if !s.Users().InsertMany(users) {
		logger.Sugar.Error("Error seeding database: users rejected")
		return
	}

	if s.Incidents().CountDocuments(store.Filter{}) != 0 {
		return
	}
	logger.Sugar.Info("Seeding incidents...")
	if !s.Incidents().InsertMany(MockIncidents(users, time.Now())) {
		logger.Sugar.Error("Error seeding database: incidents rejected")
	}
}

func preferences(medical, assault, accident, other bool, radius int) map[string]any {
	return map[string]any{
		"receiveAlerts": map[string]any{"medical": medical, "assault": assault, "accident": accident, "other": other},
		"alertRadius":   radius,
		"silentMode":    false,
	}
}

func contact(name, relationship, phone string) map[string]any {
	return map[string]any{"name": name, "relationship": relationship, "phone": phone}
}

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// MockUsers returns the five demo users.
func MockUsers() []store.Document {
	return []store.Document{
		{
			"id":                "user1",
			"name":              "Sarah Johnson",
			"email":             "sarah@safecircle.com",
			"phone":             "+1 555-0101",
			"profilePic":        avatar("Sarah"),
			"bio":               "Computer Science student, always ready to help",
			"profileComplete":   true,
			"level":             3,
			"points":            450,
			"responses":         12,
			"rating":            4.8,
			"badges":            []any{"first-responder", "speed-demon", "guardian-angel"},
			"bloodType":         "O+",
			"allergies":         "Penicillin, Peanuts",
			"medications":       "Insulin, EpiPen",
			"medicalConditions": "Type 1 Diabetes",
			"emergencyContacts": []any{
				contact("Emergency Contact", "Primary", "+91 9675852627"),
				contact("Mom", "Mother", "+1 555-1234"),
			},
			"trustedCircle": []any{"user2", "user3", "user4"},
			"preferences":   preferences(true, true, true, true, 1000),
		},
		{
			"id":                "user2",
			"name":              "Mike Chen",
			"email":             "mike@safecircle.com",
			"phone":             "+1 555-0102",
			"profilePic":        avatar("Mike"),
			"bio":               "Pre-med student with first aid certification",
			"profileComplete":   true,
			"level":             4,
			"points":            680,
			"responses":         20,
			"rating":            4.9,
			"badges":            []any{"first-responder", "speed-demon", "lifesaver", "certified-helper"},
			"bloodType":         "A+",
			"allergies":         "None",
			"medications":       "None",
			"medicalConditions": "None",
			"emergencyContacts": []any{
				contact("Emily Chen", "Sister", "+1 555-2234"),
			},
			"trustedCircle": []any{"user1", "user5"},
			"preferences":   preferences(true, true, true, true, 1500),
		},
		{
			"id":                "user3",
			"name":              "Emma Wilson",
			"email":             "emma@safecircle.com",
			"phone":             "+1 555-0103",
			"profilePic":        avatar("Emma"),
			"bio":               "Psychology major, mental health advocate",
			"profileComplete":   true,
			"level":             2,
			"points":            280,
			"responses":         8,
			"rating":            4.7,
			"badges":            []any{"first-responder", "guardian-angel"},
			"bloodType":         "B+",
			"allergies":         "Latex",
			"medications":       "None",
			"medicalConditions": "None",
			"emergencyContacts": []any{
				contact("Mom", "Mother", "+1 555-3234"),
			},
			"trustedCircle": []any{"user1", "user2"},
			"preferences":   preferences(true, true, false, true, 800),
		},
		{
			"id":                "user4",
			"name":              "James Rodriguez",
			"email":             "james@safecircle.com",
			"phone":             "+1 555-0104",
			"profilePic":        avatar("James"),
			"bio":               "Engineering student, campus security volunteer",
			"profileComplete":   true,
			"level":             5,
			"points":            1250,
			"responses":         35,
			"rating":            4.9,
			"badges":            []any{"first-responder", "speed-demon", "lifesaver", "community-hero", "night-watch", "legend"},
			"bloodType":         "AB+",
			"allergies":         "None",
			"medications":       "None",
			"medicalConditions": "None",
			"emergencyContacts": []any{
				contact("Maria Rodriguez", "Mother", "+1 555-4234"),
			},
			"trustedCircle": []any{"user1", "user5"},
			"preferences":   preferences(true, true, true, true, 2000),
		},
		{
			"id":                "user5",
			"name":              "Lily Park",
			"email":             "lily@safecircle.com",
			"phone":             "+1 555-0105",
			"profilePic":        avatar("Lily"),
			"bio":               "Nursing student, certified EMT",
			"profileComplete":   true,
			"level":             4,
			"points":            920,
			"responses":         28,
			"rating":            5.0,
			"badges":            []any{"first-responder", "speed-demon", "lifesaver", "certified-helper", "accuracy-expert"},
			"bloodType":         "O-",
			"allergies":         "None",
			"medications":       "None",
			"medicalConditions": "None",
			"emergencyContacts": []any{
				contact("David Park", "Father", "+1 555-5234"),
			},
			"trustedCircle": []any{"user2", "user4"},
			"preferences":   preferences(true, true, true, true, 1500),
		},
	}
}

func message(id, sender, text string, at time.Time) map[string]any {
	return map[string]any{"id": id, "sender": sender, "message": text, "timestamp": at.Format(time.RFC3339)}
}

// MockIncidents returns three active incidents whose victims are users[0],
// users[2] and users[1]. Timestamps are relative to now.
func MockIncidents(users []store.Document, now time.Time) []store.Document {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	return []store.Document{
		{
			"id":                        "incident1",
			"type":                      "Medical",
			"victim":                    map[string]any(users[0]),
			"location":                  map[string]any{"lat": 37.7749, "lng": -122.4194, "address": "Main Library, Campus"},
			"distance":                  350,
			"description":               "Feeling dizzy and disoriented",
			"timestamp":                 ago(3 * time.Minute).Format(time.RFC3339),
			"status":                    "active",
			"respondingHelpers":         []any{"user2", "user4", "user5"},
			"arrivedHelpers":            []any{},
			"emergencyServicesNotified": []any{"campus-security", "ambulance"},
			"chatMessages": []any{
				message("msg1", "user2", "I'm 2 minutes away with first aid kit", ago(2*time.Minute)),
				message("msg2", "user1", "I'm at the library near the entrance", ago(90*time.Second)),
				message("msg3", "user4", "Campus security has been notified", ago(time.Minute)),
			},
		},
		{
			"id":                        "incident2",
			"type":                      "Assault",
			"victim":                    map[string]any(users[2]),
			"location":                  map[string]any{"lat": 37.7739, "lng": -122.4200, "address": "North Parking Lot"},
			"distance":                  580,
			"description":               "Feeling unsafe, someone following me",
			"timestamp":                 ago(5 * time.Minute).Format(time.RFC3339),
			"status":                    "active",
			"respondingHelpers":         []any{"user4"},
			"arrivedHelpers":            []any{},
			"emergencyServicesNotified": []any{"campus-security", "police"},
			"chatMessages": []any{
				message("msg4", "user4", "On my way, stay in well-lit area", ago(3*time.Minute)),
				message("msg5", "user3", "I'm near the campus store, moving towards the lot entrance", ago(2*time.Minute)),
			},
		},
		{
			"id":                        "incident3",
			"type":                      "Accident",
			"victim":                    map[string]any(users[1]),
			"location":                  map[string]any{"lat": 37.7759, "lng": -122.4184, "address": "Sports Complex"},
			"distance":                  920,
			"description":               "Twisted ankle during basketball",
			"timestamp":                 ago(8 * time.Minute).Format(time.RFC3339),
			"status":                    "active",
			"respondingHelpers":         []any{"user5"},
			"arrivedHelpers":            []any{"user5"},
			"emergencyServicesNotified": []any{"campus-security"},
			"chatMessages": []any{
				message("msg6", "user5", "I'm here with ice pack and compression wrap", ago(time.Minute)),
			},
		},
	}
}
