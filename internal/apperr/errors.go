package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active focus session")
)
