package entities

import "errors"

var (
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrCacheRead         = errors.New("cache read failed")
	ErrCacheWrite        = errors.New("cache write failed")
	ErrInvalidQuote      = errors.New("invalid quote")
)
