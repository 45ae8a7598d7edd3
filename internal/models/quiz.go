package models

import "time"

// QuizMode identifies one of the three quiz interaction modes
type QuizMode string

const (
	ModeCnToEn      QuizMode = "cn_to_en"
	ModeListenWrite QuizMode = "listen_write"
	ModeFlashcard   QuizMode = "flashcard"
)

// Valid reports whether the mode is one of the known quiz modes
func (m QuizMode) Valid() bool {
	return m == ModeCnToEn || m == ModeListenWrite || m == ModeFlashcard
}

// QuizOutcome represents the per-item result produced during a quiz session.
// The word and definition are denormalized for the result screen.
type QuizOutcome struct {
	WordID     int    `json:"wordId"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	IsCorrect  bool   `json:"isCorrect"`
	UserAnswer string `json:"userAnswer,omitempty"`
}

// QuizRecord represents one persisted, append-only quiz event
type QuizRecord struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	WordID    int       `json:"wordId"`
	QuizType  QuizMode  `json:"quizType"`
	IsCorrect bool      `json:"isCorrect"`
	CreatedAt time.Time `json:"createdAt"`
}

// StartQuizRequest represents a quiz session start request.
// Either UnitID or Source ("wrong_words") selects the pool.
type StartQuizRequest struct {
	Mode          QuizMode `json:"mode"`
	UnitID        int      `json:"unitId"`
	Source        string   `json:"source"`
	MinImportance int      `json:"minImportance"`
}

// QuizResult represents the completed outcome sequence handed off at session end
type QuizResult struct {
	Mode     QuizMode      `json:"mode"`
	Total    int           `json:"total"`
	Outcomes []QuizOutcome `json:"outcomes"`
}
