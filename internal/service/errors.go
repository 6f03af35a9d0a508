package service

import (
	"errors"
	"fmt"
)

var (
	ErrAPIKeyMissing  = errors.New("gemini API key is not configured on the server")
	ErrNoCandidates   = errors.New("gemini response has no candidates")
	ErrEmptyCandidate = errors.New("gemini candidate has no text")
	ErrInvalidImage   = errors.New("image data is not valid base64")
)

// ProviderError is a non-success answer from the provider. Body holds the
// provider's error text unchanged so it can be relayed to the caller.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gemini API returned %d: %s", e.StatusCode, e.Body)
}
