package models

import "time"

// WrongWordEntry represents the per-user, per-word miss/hit ledger record.
// At most one entry exists per (user, word) pair.
type WrongWordEntry struct {
	ID            int       `json:"id"`
	UserID        int       `json:"userId"`
	WordID        int       `json:"wordId"`
	WrongCount    int       `json:"wrongCount"`
	CorrectStreak int       `json:"correctStreak"`
	Importance    int       `json:"importance"` // Review priority tier 1-3
	Mastered      bool      `json:"mastered"`
	LastWrongAt   time.Time `json:"lastWrongAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// WrongWordListItem represents a ledger entry joined to its word for listing
type WrongWordListItem struct {
	ID            int    `json:"id"`
	WordID        int    `json:"wordId"`
	Word          string `json:"word"`
	Phonetic      string `json:"phonetic,omitempty"`
	Definition    string `json:"definition"`
	WrongCount    int    `json:"wrongCount"`
	CorrectStreak int    `json:"correctStreak"`
	Importance    int    `json:"importance"`
}

// UpdateWrongWordRequest represents an external update to a ledger entry.
// Importance and mastery are set by user/admin actions, never by the quiz core.
type UpdateWrongWordRequest struct {
	Importance *int  `json:"importance"`
	Mastered   *bool `json:"mastered"`
}
