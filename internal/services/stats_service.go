package services

import (
	"context"

	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// statsService aggregates dashboard numbers from the quiz and wrong word tables
type statsService struct {
	quizRecordRepo QuizRecordRepository
	wrongWordRepo  WrongWordRepository
	logger         *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(quizRecordRepo QuizRecordRepository, wrongWordRepo WrongWordRepository, logger *zap.Logger) *statsService {
	return &statsService{
		quizRecordRepo: quizRecordRepo,
		wrongWordRepo:  wrongWordRepo,
		logger:         logger,
	}
}

// GetDashboard concurrently collects today's quiz counters and the wrong word totals
func (s *statsService) GetDashboard(ctx context.Context, userID int) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	doneChan := make(chan struct{}, 2)
	errChan := make(chan error, 2)

	// Today's quiz activity
	go func() {
		total, correct, err := s.quizRecordRepo.CountToday(ctx, userID)
		if err != nil {
			s.logger.Error("failed to count today's quiz records", zap.Error(err))
			errChan <- err
			return
		}
		stats.TodayCount = total
		stats.TodayCorrect = correct
		doneChan <- struct{}{}
	}()

	// Wrong word book size
	go func() {
		total, important, err := s.wrongWordRepo.CountByUserID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to count wrong words", zap.Error(err))
			errChan <- err
			return
		}
		stats.TotalWrong = total
		stats.ImportantWrong = important
		doneChan <- struct{}{}
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-doneChan:
		case err := <-errChan:
			return nil, err
		}
	}

	return stats, nil
}
