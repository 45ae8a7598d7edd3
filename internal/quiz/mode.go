package quiz

import (
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// Speaker is the text-to-speech capability consumed by the quiz engine.
// Speak is fire-and-forget; the engine never observes completion.
type Speaker interface {
	Speak(word string)
}

// NopSpeaker is a Speaker that does nothing
type NopSpeaker struct{}

// Speak implements Speaker
func (NopSpeaker) Speak(string) {}

// Mode drives the per-item interaction for one quiz mode
type Mode interface {
	// Tag returns the persisted mode identifier
	Tag() models.QuizMode
	// Enter is called when an item becomes the current one
	Enter(word models.Word)
	// Submit grades a typed answer and produces the item outcome.
	// Modes without text entry return an error.
	Submit(word models.Word, input string) (models.QuizOutcome, error)
	// Mark records a self-reported outcome. Typed modes return an error.
	Mark(word models.Word, known bool) (models.QuizOutcome, error)
}

// typedMode implements the cn_to_en and listen_write modes: free-text
// spelling input graded against the canonical word.
type typedMode struct {
	tag          models.QuizMode
	speaker      Speaker
	speakOnEnter bool
}

// NewCnToEnMode creates the "show definition, type the word" mode
func NewCnToEnMode(speaker Speaker) Mode {
	return &typedMode{tag: models.ModeCnToEn, speaker: speaker}
}

// NewListenWriteMode creates the dictation mode: the word is spoken when the
// item becomes current and can be replayed on demand.
func NewListenWriteMode(speaker Speaker) Mode {
	return &typedMode{tag: models.ModeListenWrite, speaker: speaker, speakOnEnter: true}
}

// Tag returns the persisted mode identifier
func (m *typedMode) Tag() models.QuizMode {
	return m.tag
}

// Enter speaks the word for dictation mode
func (m *typedMode) Enter(word models.Word) {
	if m.speakOnEnter {
		m.speaker.Speak(word.Word)
	}
}

// Submit grades the input by trimmed, case-insensitive comparison with the
// canonical spelling. Empty input is accepted as a losing answer.
func (m *typedMode) Submit(word models.Word, input string) (models.QuizOutcome, error) {
	answer := strings.TrimSpace(input)
	correct := strings.EqualFold(answer, word.Word)

	// Speak the correct pronunciation after a miss
	if !correct {
		m.speaker.Speak(word.Word)
	}

	return models.QuizOutcome{
		WordID:     word.ID,
		Word:       word.Word,
		Definition: word.Definition,
		IsCorrect:  correct,
		UserAnswer: answer,
	}, nil
}

// Mark is not supported for typed modes
func (m *typedMode) Mark(models.Word, bool) (models.QuizOutcome, error) {
	return models.QuizOutcome{}, fmt.Errorf("%w: mode %s takes typed answers", ErrInvalidTransition, m.tag)
}

// flashcardMode implements the flip-and-self-report mode. Correctness is the
// learner's own "known" mark, never a text comparison.
type flashcardMode struct{}

// NewFlashcardMode creates the flashcard mode
func NewFlashcardMode() Mode {
	return &flashcardMode{}
}

// Tag returns the persisted mode identifier
func (m *flashcardMode) Tag() models.QuizMode {
	return models.ModeFlashcard
}

// Enter does nothing for flashcards
func (m *flashcardMode) Enter(models.Word) {}

// Submit is not supported for flashcards
func (m *flashcardMode) Submit(models.Word, string) (models.QuizOutcome, error) {
	return models.QuizOutcome{}, fmt.Errorf("%w: flashcard mode has no text input", ErrInvalidTransition)
}

// Mark records the self-reported outcome
func (m *flashcardMode) Mark(word models.Word, known bool) (models.QuizOutcome, error) {
	return models.QuizOutcome{
		WordID:     word.ID,
		Word:       word.Word,
		Definition: word.Definition,
		IsCorrect:  known,
	}, nil
}

// ModeFor returns the Mode implementation for a mode tag
func ModeFor(tag models.QuizMode, speaker Speaker) (Mode, error) {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	switch tag {
	case models.ModeCnToEn:
		return NewCnToEnMode(speaker), nil
	case models.ModeListenWrite:
		return NewListenWriteMode(speaker), nil
	case models.ModeFlashcard:
		return NewFlashcardMode(), nil
	default:
		return nil, fmt.Errorf("unknown quiz mode: %s", tag)
	}
}
