package domain

import "time"

type Rating struct {
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Value     float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
