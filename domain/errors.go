package domain

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrForeignKey       = errors.New("referenced record does not exist")
	ErrConflict         = errors.New("record already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrSchema           = errors.New("failed to ensure schema")
)
