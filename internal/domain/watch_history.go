package domain

import "time"

// WatchHistoryEntry is one watch session. A user can have several entries
// for the same movie; each entry counts as a separate preference signal.
type WatchHistoryEntry struct {
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Duration  int       `json:"watch_duration"`
	Completed bool      `json:"completed"`
	WatchedAt time.Time `json:"watched_at"`
}
