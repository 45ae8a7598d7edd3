package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// quizRecordRepository implements QuizRecordRepository
type quizRecordRepository struct {
	db *sql.DB
}

// NewQuizRecordRepository creates a new quiz record repository
func NewQuizRecordRepository(db *sql.DB) *quizRecordRepository {
	return &quizRecordRepository{
		db: db,
	}
}

// CreateBatch appends one quiz record per outcome. Records are write-once;
// nothing ever updates or deletes them.
func (r *quizRecordRepository) CreateBatch(ctx context.Context, userID int, mode models.QuizMode, outcomes []models.QuizOutcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes to record")
	}

	placeholders := make([]string, len(outcomes))
	args := []any{}
	for i, outcome := range outcomes {
		placeholders[i] = "(?, ?, ?, ?)"
		args = append(args, userID, outcome.WordID, string(mode), outcome.IsCorrect)
	}

	query := fmt.Sprintf(`
		INSERT INTO quiz_records (user_id, word_id, quiz_type, is_correct)
		VALUES %s
	`, strings.Join(placeholders, ","))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create quiz records: %w", err)
	}

	return nil
}

// CountToday returns today's total and correct record counts for a user
func (r *quizRecordRepository) CountToday(ctx context.Context, userID int) (total int, correct int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(is_correct), 0)
		FROM quiz_records
		WHERE user_id = ? AND created_at >= CURDATE()
	`

	err = r.db.QueryRowContext(ctx, query, userID).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count today's quiz records: %w", err)
	}

	return total, correct, nil
}
