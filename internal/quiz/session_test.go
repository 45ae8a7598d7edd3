package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabbook/backend/internal/models"
)

func testPool() []models.Word {
	return []models.Word{
		{ID: 1, Word: "cat", Phonetic: "/kæt/", Definition: "猫"},
		{ID: 2, Word: "dog", Phonetic: "/dɒɡ/", Definition: "狗"},
		{ID: 3, Word: "bird", Phonetic: "/bɜːd/", Definition: "鸟"},
	}
}

func newTestSession(t *testing.T, tag models.QuizMode, pool []models.Word) *Session {
	t.Helper()
	mode, err := ModeFor(tag, NopSpeaker{})
	require.NoError(t, err)
	return NewSession("session-1", 42, mode, pool)
}

func TestSession_TypedWalkthrough(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool())

	// Item 1: correct
	correct, err := s.SubmitAnswer("cat")
	require.NoError(t, err)
	assert.True(t, correct)

	// Answering twice is rejected
	_, err = s.SubmitAnswer("cat")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Advance())

	// Item 2: wrong
	correct, err = s.SubmitAnswer("dig")
	require.NoError(t, err)
	assert.False(t, correct)
	require.NoError(t, s.Advance())

	// Item 3: correct with messy input
	correct, err = s.SubmitAnswer("  BIRD ")
	require.NoError(t, err)
	assert.True(t, correct)

	// Result is refused until the last advance
	_, err = s.Result()
	assert.ErrorIs(t, err, ErrNotFinished)

	require.NoError(t, s.Advance())
	assert.True(t, s.Finished())

	result, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, models.ModeCnToEn, result.Mode)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Outcomes, 3)

	// One outcome per item, in visit order
	assert.Equal(t, 1, result.Outcomes[0].WordID)
	assert.True(t, result.Outcomes[0].IsCorrect)
	assert.Equal(t, 2, result.Outcomes[1].WordID)
	assert.False(t, result.Outcomes[1].IsCorrect)
	assert.Equal(t, "dig", result.Outcomes[1].UserAnswer)
	assert.Equal(t, 3, result.Outcomes[2].WordID)
	assert.True(t, result.Outcomes[2].IsCorrect)
}

func TestSession_AdvanceRequiresOutcome(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool())

	err := s.Advance()

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_FinishedRejectsItemActions(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool()[:1])

	_, err := s.SubmitAnswer("cat")
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	require.True(t, s.Finished())

	_, err = s.SubmitAnswer("cat")
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.ErrorIs(t, s.Advance(), ErrSessionFinished)
	assert.ErrorIs(t, s.Flip(), ErrSessionFinished)
	assert.ErrorIs(t, s.Replay(), ErrSessionFinished)
}

func TestSession_EmptyPool(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, nil)

	assert.True(t, s.Finished())

	result, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Outcomes)
}

func TestSession_FlashcardWalkthrough(t *testing.T) {
	s := newTestSession(t, models.ModeFlashcard, testPool())

	// Typed answers are not accepted
	_, err := s.SubmitAnswer("cat")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Mark advances immediately
	require.NoError(t, s.Flip())
	require.NoError(t, s.MarkFlashcard(true))
	view := s.View()
	assert.Equal(t, 1, view.Index)
	assert.False(t, view.Flipped)

	require.NoError(t, s.MarkFlashcard(false))
	require.NoError(t, s.MarkFlashcard(true))

	assert.True(t, s.Finished())

	result, err := s.Result()
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 3)
	assert.True(t, result.Outcomes[0].IsCorrect)
	assert.False(t, result.Outcomes[1].IsCorrect)
	assert.True(t, result.Outcomes[2].IsCorrect)
	// Flashcard outcomes never carry a typed answer
	for _, outcome := range result.Outcomes {
		assert.Empty(t, outcome.UserAnswer)
	}
}

func TestSession_FlipOnlyForFlashcards(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool())

	assert.ErrorIs(t, s.Flip(), ErrInvalidTransition)
}

func TestSession_MarkOnlyForFlashcards(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool())

	assert.ErrorIs(t, s.MarkFlashcard(true), ErrInvalidTransition)
}

func TestSession_ReplayOnlyForDictation(t *testing.T) {
	speaker := &recordingSpeaker{}
	mode := NewListenWriteMode(speaker)
	s := NewSession("session-1", 42, mode, testPool())

	// First item was spoken on session start
	require.Equal(t, []string{"cat"}, speaker.spoken)

	require.NoError(t, s.Replay())
	assert.Equal(t, []string{"cat", "cat"}, speaker.spoken)

	flashcard := newTestSession(t, models.ModeFlashcard, testPool())
	assert.ErrorIs(t, flashcard.Replay(), ErrInvalidTransition)
}

func TestSession_ViewHidesWordByMode(t *testing.T) {
	t.Run("cn_to_en reveals spelling after the answer", func(t *testing.T) {
		s := newTestSession(t, models.ModeCnToEn, testPool())

		view := s.View()
		assert.Equal(t, "猫", view.Definition)
		assert.Empty(t, view.Word)
		assert.Empty(t, view.Phonetic)

		_, err := s.SubmitAnswer("wrong")
		require.NoError(t, err)

		view = s.View()
		assert.Equal(t, "cat", view.Word)
		assert.Equal(t, "/kæt/", view.Phonetic)
		assert.False(t, view.IsCorrect)
	})

	t.Run("listen_write hides everything until answered", func(t *testing.T) {
		s := newTestSession(t, models.ModeListenWrite, testPool())

		view := s.View()
		assert.Empty(t, view.Word)
		assert.Empty(t, view.Phonetic)
		assert.Empty(t, view.Definition)

		_, err := s.SubmitAnswer("cat")
		require.NoError(t, err)

		view = s.View()
		assert.Equal(t, "cat", view.Word)
		assert.Equal(t, "猫", view.Definition)
		assert.True(t, view.IsCorrect)
	})

	t.Run("flashcard reveals the back on flip", func(t *testing.T) {
		s := newTestSession(t, models.ModeFlashcard, testPool())

		view := s.View()
		assert.Equal(t, "cat", view.Word)
		assert.Empty(t, view.Definition)

		require.NoError(t, s.Flip())

		view = s.View()
		assert.Equal(t, "cat", view.Word)
		assert.Equal(t, "/kæt/", view.Phonetic)
		assert.Equal(t, "猫", view.Definition)
	})
}

func TestSession_OutcomesReturnsCopy(t *testing.T) {
	s := newTestSession(t, models.ModeCnToEn, testPool())

	_, err := s.SubmitAnswer("cat")
	require.NoError(t, err)

	outcomes := s.Outcomes()
	require.Len(t, outcomes, 1)
	outcomes[0].IsCorrect = false

	assert.True(t, s.Outcomes()[0].IsCorrect)
}
