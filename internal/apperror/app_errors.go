package apperror

import "errors"

var (
	ErrConfiguration = errors.New("invalid game configuration")
	ErrNoActiveGame  = errors.New("no active game")
)
