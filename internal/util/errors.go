package util

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPage       = errors.New("page number out of range")
	ErrMissingConfig     = errors.New("missing required configuration")
	ErrExtractionService = errors.New("extraction service failure")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrPersistence       = errors.New("persistence failure")
)
