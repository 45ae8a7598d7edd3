package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/vocabbook/backend/internal/models"
)

var (
	// ErrInvalidTransition is returned for actions the current state does not allow
	ErrInvalidTransition = errors.New("invalid quiz transition")
	// ErrSessionFinished is returned for item actions on a finished session
	ErrSessionFinished = errors.New("quiz session already finished")
	// ErrNotFinished is returned when results are requested before the last item
	ErrNotFinished = errors.New("quiz session not finished")
)

// Session drives one quiz run: one item at a time over a shuffled pool,
// collecting an outcome per item. Transitions are synchronous and touch no
// I/O; persistence happens only at the finish step, outside this type.
type Session struct {
	mu sync.Mutex

	id     string
	userID int
	mode   Mode

	pool     []models.Word
	index    int
	outcomes []models.QuizOutcome
	finished bool

	// per-item sub-state, reset on advance
	answered    bool
	lastCorrect bool
	flipped     bool

	touchedAt time.Time
}

// ItemView is the learner-facing snapshot of the current item. The canonical
// word is withheld until it may be shown for the active mode.
type ItemView struct {
	SessionID  string          `json:"sessionId"`
	Mode       models.QuizMode `json:"mode"`
	Index      int             `json:"index"`
	Total      int             `json:"total"`
	Finished   bool            `json:"finished"`
	Word       string          `json:"word,omitempty"`
	Phonetic   string          `json:"phonetic,omitempty"`
	Definition string          `json:"definition,omitempty"`
	Answered   bool            `json:"answered"`
	IsCorrect  bool            `json:"isCorrect"`
	Flipped    bool            `json:"flipped"`
}

// NewSession creates a session over an already-shuffled pool. An empty pool
// yields a session that is already finished with zero outcomes.
func NewSession(id string, userID int, mode Mode, pool []models.Word) *Session {
	s := &Session{
		id:        id,
		userID:    userID,
		mode:      mode,
		pool:      pool,
		touchedAt: time.Now(),
	}
	if len(pool) == 0 {
		s.finished = true
	} else {
		mode.Enter(pool[0])
	}
	return s
}

// ID returns the opaque session identifier
func (s *Session) ID() string {
	return s.id
}

// UserID returns the owning learner
func (s *Session) UserID() int {
	return s.userID
}

// ModeTag returns the session's quiz mode
func (s *Session) ModeTag() models.QuizMode {
	return s.mode.Tag()
}

// SubmitAnswer grades a typed answer for the current item. Valid only for
// typed modes while the current item is unanswered. There is no auto-advance.
func (s *Session) SubmitAnswer(input string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.finished {
		return false, ErrSessionFinished
	}
	if s.answered {
		return false, ErrInvalidTransition
	}

	outcome, err := s.mode.Submit(s.pool[s.index], input)
	if err != nil {
		return false, err
	}

	s.outcomes = append(s.outcomes, outcome)
	s.answered = true
	s.lastCorrect = outcome.IsCorrect
	return outcome.IsCorrect, nil
}

// Flip reveals the definition side of the current flashcard
func (s *Session) Flip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.finished {
		return ErrSessionFinished
	}
	if s.mode.Tag() != models.ModeFlashcard {
		return ErrInvalidTransition
	}
	s.flipped = true
	return nil
}

// MarkFlashcard records the self-reported outcome for the current flashcard
// and advances immediately. Valid at most once per item.
func (s *Session) MarkFlashcard(known bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.finished {
		return ErrSessionFinished
	}
	if s.answered {
		return ErrInvalidTransition
	}

	outcome, err := s.mode.Mark(s.pool[s.index], known)
	if err != nil {
		return err
	}

	s.outcomes = append(s.outcomes, outcome)
	s.answered = true
	s.advanceLocked()
	return nil
}

// Advance moves to the next item, or to the Finished state after the last
// one. Valid only once the current item has an outcome.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.finished {
		return ErrSessionFinished
	}
	if !s.answered {
		return ErrInvalidTransition
	}
	s.advanceLocked()
	return nil
}

// advanceLocked resets the per-item sub-state and moves the cursor. Caller
// must hold s.mu.
func (s *Session) advanceLocked() {
	if s.index+1 >= len(s.pool) {
		s.finished = true
		return
	}
	s.index++
	s.answered = false
	s.lastCorrect = false
	s.flipped = false
	s.mode.Enter(s.pool[s.index])
}

// Replay re-triggers pronunciation of the current word in dictation mode
func (s *Session) Replay() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.finished {
		return ErrSessionFinished
	}
	if s.mode.Tag() != models.ModeListenWrite {
		return ErrInvalidTransition
	}
	s.mode.Enter(s.pool[s.index])
	return nil
}

// Finished reports whether every item has been visited
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Outcomes returns the ordered outcome sequence collected so far
func (s *Session) Outcomes() []models.QuizOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.QuizOutcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Result returns the completed outcome sequence. Only valid once finished.
func (s *Session) Result() (*models.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished {
		return nil, ErrNotFinished
	}
	outcomes := make([]models.QuizOutcome, len(s.outcomes))
	copy(outcomes, s.outcomes)
	return &models.QuizResult{
		Mode:     s.mode.Tag(),
		Total:    len(s.pool),
		Outcomes: outcomes,
	}, nil
}

// View returns the current item snapshot for the learner
func (s *Session) View() ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := ItemView{
		SessionID: s.id,
		Mode:      s.mode.Tag(),
		Index:     s.index,
		Total:     len(s.pool),
		Finished:  s.finished,
		Answered:  s.answered,
		IsCorrect: s.lastCorrect,
		Flipped:   s.flipped,
	}
	if s.finished {
		return view
	}

	word := s.pool[s.index]
	switch s.mode.Tag() {
	case models.ModeCnToEn:
		// Definition first; spelling and phonetic revealed after the answer
		view.Definition = word.Definition
		if s.answered {
			view.Word = word.Word
			view.Phonetic = word.Phonetic
		}
	case models.ModeListenWrite:
		// Everything is hidden until the answer is in
		if s.answered {
			view.Word = word.Word
			view.Phonetic = word.Phonetic
			view.Definition = word.Definition
		}
	case models.ModeFlashcard:
		view.Word = word.Word
		if s.flipped {
			view.Phonetic = word.Phonetic
			view.Definition = word.Definition
		}
	}
	return view
}

// touched returns the time of the last transition
func (s *Session) touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
