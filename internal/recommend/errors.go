// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable is returned while the registry is not ready.
	ErrModelUnavailable = errors.New("recommendation models unavailable")

	// ErrInvalidCount is returned for a count that is not positive.
	ErrInvalidCount = errors.New("count must be positive")

	// ErrEmptyHistory marks a history table with no rows.
	ErrEmptyHistory = errors.New("interaction history is empty")
)

// LoadError records why one artifact failed to load.
type LoadError struct {
	Artifact string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Artifact, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
