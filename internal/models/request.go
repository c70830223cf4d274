package models

import "time"

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

type MatchRequest struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// IncomingRequest is a pending request enriched with the sender's identity
// for the receiver's inbox.
type IncomingRequest struct {
	MatchRequest
	SenderName   string   `json:"sender_name"`
	SenderPhoto  string   `json:"sender_pfp"`
	SenderSkills []string `json:"sender_skills"`
}
