package models

import "time"

const (
	TutorialVideo = "video"
	TutorialNotes = "notes"
)

type Tutorial struct {
	ID          int64     `json:"id"`
	CreatorID   int64     `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentType string    `json:"content_type"`
	VideoURL    *string   `json:"video_url,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
}

// WatchedTutorial is a tutorial with the viewer's most recent watch time.
type WatchedTutorial struct {
	Tutorial
	WatchedAt time.Time `json:"watched_at"`
}
