package models

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrStorage              = errors.New("storage error")
	ErrPersistence          = errors.New("persistence error")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
)
