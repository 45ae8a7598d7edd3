package services

import (
	"context"
	"fmt"

	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// QuizRecordRepository is the interface that wraps methods for QuizRecord table data access
type QuizRecordRepository interface {
	// CreateBatch appends one record per outcome in one transaction.
	//
	// If some error occurs during data creation, the error will be returned.
	CreateBatch(ctx context.Context, userID int, mode models.QuizMode, outcomes []models.QuizOutcome) error
	// CountToday returns how many answers the user recorded today and how many of them were correct.
	CountToday(ctx context.Context, userID int) (total int, correct int, err error)
}

// WrongWordScoreRepository is the interface that wraps the scoring methods for WrongWord table data access
type WrongWordScoreRepository interface {
	// RecordMiss registers an incorrect answer for the word in one atomic statement.
	//
	// A missing ledger entry is created with a wrong count of one.
	RecordMiss(ctx context.Context, userID, wordID int) error
	// RecordHit registers a correct answer for the word.
	//
	// Words without a ledger entry are left untouched.
	RecordHit(ctx context.Context, userID, wordID int) error
}

// resultService persists finished quiz outcomes and folds them into the wrong word ledger
type resultService struct {
	quizRecordRepo QuizRecordRepository
	wrongWordRepo  WrongWordScoreRepository
	logger         *zap.Logger
}

// NewResultService creates a new result service
func NewResultService(quizRecordRepo QuizRecordRepository, wrongWordRepo WrongWordScoreRepository, logger *zap.Logger) *resultService {
	return &resultService{
		quizRecordRepo: quizRecordRepo,
		wrongWordRepo:  wrongWordRepo,
		logger:         logger,
	}
}

// Persist appends the quiz records and updates the wrong word ledger in session order.
// A session with no outcomes persists nothing.
func (s *resultService) Persist(ctx context.Context, userID int, mode models.QuizMode, outcomes []models.QuizOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	if err := s.quizRecordRepo.CreateBatch(ctx, userID, mode, outcomes); err != nil {
		return fmt.Errorf("failed to save quiz records: %w", err)
	}

	for _, outcome := range outcomes {
		if outcome.IsCorrect {
			if err := s.wrongWordRepo.RecordHit(ctx, userID, outcome.WordID); err != nil {
				return fmt.Errorf("failed to score word %d: %w", outcome.WordID, err)
			}
			continue
		}
		if err := s.wrongWordRepo.RecordMiss(ctx, userID, outcome.WordID); err != nil {
			return fmt.Errorf("failed to score word %d: %w", outcome.WordID, err)
		}
	}

	s.logger.Info("quiz outcomes persisted",
		zap.Int("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("outcomes", len(outcomes)))

	return nil
}
