package coingecko

import "errors"

var (
	ErrNoAssetsRequested = errors.New("no assets requested")
	ErrIncompleteQuote   = errors.New("incomplete quote data")
)
