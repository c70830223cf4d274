package models

import "time"

// Match is an undirected pairing between two users. The mentor/mentee
// columns break symmetry in storage only; neither side outranks the other.
type Match struct {
	ID        int64     `json:"id"`
	MentorID  int64     `json:"mentor_id"`
	MenteeID  int64     `json:"mentee_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Participant is the identity snapshot of one side of a match.
type Participant struct {
	ID           int64    `json:"id"`
	UserName     string   `json:"user_name"`
	ProfilePhoto string   `json:"profile_photo"`
	Skills       []string `json:"skills"`
}

// MatchWithParticipants carries a match together with both participants'
// identity snapshots so the viewer-relative side can be picked later.
type MatchWithParticipants struct {
	Match
	Mentor Participant `json:"mentor"`
	Mentee Participant `json:"mentee"`
}
