package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrAlreadySettled  = errors.New("transaction already settled")
	ErrStoreClosed     = errors.New("store closed")
	ErrProviderFailure = errors.New("provider failure")
)
