package models

// Word represents an English word in the unit catalog
type Word struct {
	ID         int    `json:"id"`
	UnitID     int    `json:"unitId"`
	Word       string `json:"word"`               // Canonical lowercase spelling
	Phonetic   string `json:"phonetic,omitempty"` // IPA transcription, optional
	Definition string `json:"definition"`         // Chinese gloss
}

// CreateWordRequest represents a word creation request
type CreateWordRequest struct {
	UnitID     int    `json:"unitId"`
	Word       string `json:"word"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
}

// UpdateWordRequest represents a partial word update request
type UpdateWordRequest struct {
	Word       string `json:"word"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
}

// BatchCreateWordsRequest represents a batch word creation request.
// All words land in the same unit.
type BatchCreateWordsRequest struct {
	UnitID int                 `json:"unitId"`
	Words  []CreateWordRequest `json:"words"`
}
