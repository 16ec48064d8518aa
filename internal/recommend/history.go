// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

// History is the interaction table indexed by user. It is read-only after
// construction.
type History struct {
	byUser map[UserID][]Interaction
	rows   int
}

// NewHistory indexes rows by user, preserving their order.
func NewHistory(rows []Interaction) *History {
	byUser := make(map[UserID][]Interaction)
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row)
	}
	return &History{byUser: byUser, rows: len(rows)}
}

// ForUser returns the user's rows. The slice must not be modified.
func (h *History) ForUser(userID UserID) []Interaction {
	return h.byUser[userID]
}

// Len returns the total number of rows.
func (h *History) Len() int {
	return h.rows
}

// Users returns the number of distinct users.
func (h *History) Users() int {
	return len(h.byUser)
}
