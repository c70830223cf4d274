package models

import "time"

type ChatMessage struct {
	ID       int64     `json:"id"`
	MatchID  int64     `json:"match_id"`
	SenderID int64     `json:"sender_id"`
	Content  string    `json:"content"`
	IsRead   bool      `json:"is_read"`
	SentAt   time.Time `json:"sent_at"`
}

// ThreadMessage is a message enriched with sender identity for thread views.
type ThreadMessage struct {
	ChatMessage
	SenderName  string `json:"sender_name"`
	SenderPhoto string `json:"sender_pfp"`
}

// ConversationHeader is a match seen from one participant's side: the same
// match yields a different header depending on who is asking.
type ConversationHeader struct {
	MatchID           int64     `json:"match_id"`
	MatchedAt         time.Time `json:"matched_at"`
	CounterpartID     int64     `json:"friend_id"`
	CounterpartName   string    `json:"friend_name"`
	CounterpartPhoto  string    `json:"friend_pfp"`
	CounterpartSkills []string  `json:"friend_skills"`
}

// ConversationSummary is a header plus the latest-message preview.
// A nil LastMessage means the match has no messages yet, not zero activity.
type ConversationSummary struct {
	ConversationHeader
	LastMessage *ChatMessage `json:"last_message,omitempty"`
}
