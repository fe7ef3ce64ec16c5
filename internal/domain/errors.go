package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMovieNotFound  = errors.New("movie not found")
	ErrEngineNotReady = errors.New("recommendation engine not initialized")
)
