package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// wrongWordRepository implements WrongWordRepository
type wrongWordRepository struct {
	db *sql.DB
}

// NewWrongWordRepository creates a new wrong word repository
func NewWrongWordRepository(db *sql.DB) *wrongWordRepository {
	return &wrongWordRepository{
		db: db,
	}
}

// RecordMiss creates or bumps the ledger entry for a missed word as a single
// atomic upsert: no read-then-write, so concurrent sessions cannot lose an
// increment. A new entry starts at wrong_count 1 with the default importance.
func (r *wrongWordRepository) RecordMiss(ctx context.Context, userID, wordID int) error {
	query := `
		INSERT INTO wrong_words (user_id, word_id, wrong_count, correct_streak, last_wrong_at)
		VALUES (?, ?, 1, 0, NOW())
		ON DUPLICATE KEY UPDATE
			wrong_count = wrong_count + 1,
			correct_streak = 0,
			mastered = FALSE,
			last_wrong_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, wordID); err != nil {
		return fmt.Errorf("failed to record miss: %w", err)
	}

	return nil
}

// RecordHit increments the correct streak of an existing ledger entry.
// A hit on a word with no entry is a no-op: affecting zero rows is fine.
func (r *wrongWordRepository) RecordHit(ctx context.Context, userID, wordID int) error {
	query := `
		UPDATE wrong_words
		SET correct_streak = correct_streak + 1
		WHERE user_id = ? AND word_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, userID, wordID); err != nil {
		return fmt.Errorf("failed to record hit: %w", err)
	}

	return nil
}

// GetReviewWords resolves the user's un-mastered ledger entries to their
// words, optionally filtered to importance >= minImportance.
func (r *wrongWordRepository) GetReviewWords(ctx context.Context, userID, minImportance int) ([]models.Word, error) {
	query := `
		SELECT w.id, w.unit_id, w.word, w.phonetic, w.definition
		FROM wrong_words ww
		INNER JOIN words w ON w.id = ww.word_id
		WHERE ww.user_id = ? AND ww.mastered = FALSE
	`
	args := []any{userID}

	if minImportance > 0 {
		query += ` AND ww.importance >= ?`
		args = append(args, minImportance)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// GetByUserID retrieves the user's un-mastered entries joined to their words,
// most important first, optionally filtered to importance >= minImportance
func (r *wrongWordRepository) GetByUserID(ctx context.Context, userID, minImportance int) ([]models.WrongWordListItem, error) {
	query := `
		SELECT ww.id, ww.word_id, w.word, w.phonetic, w.definition,
		       ww.wrong_count, ww.correct_streak, ww.importance
		FROM wrong_words ww
		INNER JOIN words w ON w.id = ww.word_id
		WHERE ww.user_id = ? AND ww.mastered = FALSE
	`
	args := []any{userID}

	if minImportance > 0 {
		query += ` AND ww.importance >= ?`
		args = append(args, minImportance)
	}
	query += ` ORDER BY ww.importance DESC, ww.last_wrong_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wrong words: %w", err)
	}
	defer rows.Close()

	var items []models.WrongWordListItem
	for rows.Next() {
		var item models.WrongWordListItem
		var phonetic sql.NullString
		err := rows.Scan(
			&item.ID,
			&item.WordID,
			&item.Word,
			&phonetic,
			&item.Definition,
			&item.WrongCount,
			&item.CorrectStreak,
			&item.Importance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wrong word: %w", err)
		}
		if phonetic.Valid {
			item.Phonetic = phonetic.String
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// Update sets importance and/or mastered on an entry owned by the user
func (r *wrongWordRepository) Update(ctx context.Context, id, userID int, req *models.UpdateWrongWordRequest) error {
	var setParts []string
	var args []any

	if req.Importance != nil {
		setParts = append(setParts, "importance = ?")
		args = append(args, *req.Importance)
	}
	if req.Mastered != nil {
		setParts = append(setParts, "mastered = ?")
		args = append(args, *req.Mastered)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE wrong_words
		SET %s
		WHERE id = ? AND user_id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id, userID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update wrong word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("wrong word entry not found")
	}

	return nil
}

// Delete removes an entry owned by the user
func (r *wrongWordRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM wrong_words WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wrong word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("wrong word entry not found")
	}

	return nil
}

// CountByUserID returns the user's un-mastered entry count and how many of
// those have importance >= 2
func (r *wrongWordRepository) CountByUserID(ctx context.Context, userID int) (total int, important int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(importance >= 2), 0)
		FROM wrong_words
		WHERE user_id = ? AND mastered = FALSE
	`

	err = r.db.QueryRowContext(ctx, query, userID).Scan(&total, &important)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count wrong words: %w", err)
	}

	return total, important, nil
}
