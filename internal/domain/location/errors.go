package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNameAlreadyTaken = errors.New("location name already taken")
)
