package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vocabbook/backend/internal/models"
	"github.com/vocabbook/backend/internal/quiz"
)

// SourceWrongWords selects the wrong word ledger as the quiz pool
const SourceWrongWords = "wrong_words"

// ReviewPoolRepository is the interface that wraps the pool query for wrong word review quizzes
type ReviewPoolRepository interface {
	// GetReviewWords retrieves the user's unmastered wrong words as quiz candidates.
	//
	// "minImportance" filters entries below the given importance; zero disables the filter.
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetReviewWords(ctx context.Context, userID, minImportance int) ([]models.Word, error)
}

// ResultPersister is the interface that wraps persistence of a finished quiz
type ResultPersister interface {
	// Persist appends quiz records and folds the outcomes into the wrong word ledger.
	//
	// If some error occurs during persistence, the error will be returned.
	Persist(ctx context.Context, userID int, mode models.QuizMode, outcomes []models.QuizOutcome) error
}

// quizService loads quiz pools and drives in-memory quiz sessions
type quizService struct {
	wordRepo      WordRepository
	wrongWordRepo ReviewPoolRepository
	persister     ResultPersister
	manager       *quiz.Manager
}

// NewQuizService creates a new quiz service
func NewQuizService(wordRepo WordRepository, wrongWordRepo ReviewPoolRepository, persister ResultPersister, manager *quiz.Manager) *quizService {
	return &quizService{
		wordRepo:      wordRepo,
		wrongWordRepo: wrongWordRepo,
		persister:     persister,
		manager:       manager,
	}
}

// StartSession loads and shuffles the requested pool and opens a session over it
func (s *quizService) StartSession(ctx context.Context, userID int, req *models.StartQuizRequest) (quiz.ItemView, error) {
	if !req.Mode.Valid() {
		return quiz.ItemView{}, fmt.Errorf("invalid quiz mode: %s", req.Mode)
	}

	pool, err := s.loadPool(ctx, userID, req)
	if err != nil {
		return quiz.ItemView{}, err
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	session, err := s.manager.Create(userID, req.Mode, pool)
	if err != nil {
		return quiz.ItemView{}, err
	}

	return session.View(), nil
}

// loadPool fetches the word pool from the selected source
func (s *quizService) loadPool(ctx context.Context, userID int, req *models.StartQuizRequest) ([]models.Word, error) {
	if req.Source == SourceWrongWords {
		words, err := s.wrongWordRepo.GetReviewWords(ctx, userID, req.MinImportance)
		if err != nil {
			return nil, fmt.Errorf("failed to load review words: %w", err)
		}
		return words, nil
	}

	if req.UnitID <= 0 {
		return nil, fmt.Errorf("invalid unit id")
	}
	words, err := s.wordRepo.GetByUnitID(ctx, req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit words: %w", err)
	}
	return words, nil
}

// GetView returns the current item snapshot of a session
func (s *quizService) GetView(sessionID string, userID int) (quiz.ItemView, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return quiz.ItemView{}, err
	}
	return session.View(), nil
}

// SubmitAnswer grades a typed answer for the current item
func (s *quizService) SubmitAnswer(sessionID string, userID int, answer string) (quiz.ItemView, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return quiz.ItemView{}, err
	}
	if _, err := session.SubmitAnswer(answer); err != nil {
		return quiz.ItemView{}, err
	}
	return session.View(), nil
}

// Flip reveals the back side of the current flashcard
func (s *quizService) Flip(sessionID string, userID int) (quiz.ItemView, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return quiz.ItemView{}, err
	}
	if err := session.Flip(); err != nil {
		return quiz.ItemView{}, err
	}
	return session.View(), nil
}

// MarkFlashcard records the self-reported flashcard outcome and advances
func (s *quizService) MarkFlashcard(sessionID string, userID int, known bool) (quiz.ItemView, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return quiz.ItemView{}, err
	}
	if err := session.MarkFlashcard(known); err != nil {
		return quiz.ItemView{}, err
	}
	return session.View(), nil
}

// Advance moves the session to the next item
func (s *quizService) Advance(sessionID string, userID int) (quiz.ItemView, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return quiz.ItemView{}, err
	}
	if err := session.Advance(); err != nil {
		return quiz.ItemView{}, err
	}
	return session.View(), nil
}

// Replay re-pronounces the current word in dictation mode
func (s *quizService) Replay(sessionID string, userID int) error {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return err
	}
	return session.Replay()
}

// FinishSession persists the completed outcome sequence and drops the session.
// The session stays alive if persistence fails so the finish can be retried.
func (s *quizService) FinishSession(ctx context.Context, sessionID string, userID int) (*models.QuizResult, error) {
	session, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	result, err := session.Result()
	if err != nil {
		return nil, err
	}

	if err := s.persister.Persist(ctx, userID, result.Mode, result.Outcomes); err != nil {
		return nil, err
	}

	s.manager.Remove(sessionID)
	return result, nil
}

// CancelSession drops a session without persisting anything
func (s *quizService) CancelSession(sessionID string, userID int) error {
	if _, err := s.manager.Get(sessionID, userID); err != nil {
		return err
	}
	s.manager.Remove(sessionID)
	return nil
}
