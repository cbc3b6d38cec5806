package booking

import "errors"

var (
	ErrNotFound = errors.New("booking: not found")
	ErrNoRooms  = errors.New("booking: no rooms available")
)
