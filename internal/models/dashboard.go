package models

// ActivitySignals is computed fresh per dashboard render. All counts are
// plain integers; the highlight priority comparisons depend on that.
type ActivitySignals struct {
	MatchCount           int64  `json:"match_count"`
	PendingRequestCount  int64  `json:"pending_request_count"`
	UnreadMessageCount   int64  `json:"unread_message_count"`
	NewMatchesLast7d     int64  `json:"new_matches_last_7d"`
	UnreadMessagesLast3d int64  `json:"unread_messages_last_3d"`
	Highlight            string `json:"highlight"`
}

// Dashboard is the full payload for the dashboard view.
type Dashboard struct {
	Signals    ActivitySignals      `json:"signals"`
	Matches    []ConversationHeader `json:"matches"`
	Watched    []WatchedTutorial    `json:"watched_tutorials"`
	QuickTip   string               `json:"quick_tip"`
	DidYouKnow string               `json:"did_you_know"`
}
