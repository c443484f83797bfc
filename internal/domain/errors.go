package domain

import "errors"

var (
	// ErrSessionNotFound: no wizard session under that id (expired or never
	// started).
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrNotFound: the platform API has no homestay under the requested id.
	ErrNotFound = errors.New("platform: not found")
)
