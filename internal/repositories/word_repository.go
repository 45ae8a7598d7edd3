package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// wordRepository implements WordRepository
type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// scanWord scans one word row with its nullable phonetic column
func scanWord(rows *sql.Rows) (models.Word, error) {
	var word models.Word
	var phonetic sql.NullString
	err := rows.Scan(
		&word.ID,
		&word.UnitID,
		&word.Word,
		&phonetic,
		&word.Definition,
	)
	if err != nil {
		return word, fmt.Errorf("failed to scan word: %w", err)
	}
	if phonetic.Valid {
		word.Phonetic = phonetic.String
	}
	return word, nil
}

// GetByUnitID retrieves all words of a unit ordered by ID
func (r *wordRepository) GetByUnitID(ctx context.Context, unitID int) ([]models.Word, error) {
	query := `
		SELECT id, unit_id, word, phonetic, definition
		FROM words
		WHERE unit_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
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

// Create inserts a new word
func (r *wordRepository) Create(ctx context.Context, word *models.Word) error {
	query := `
		INSERT INTO words (unit_id, word, phonetic, definition)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		word.UnitID,
		word.Word,
		nullableString(word.Phonetic),
		word.Definition,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	word.ID = int(id)
	return nil
}

// CreateBatch inserts multiple words in one statement inside a transaction
func (r *wordRepository) CreateBatch(ctx context.Context, words []models.Word) error {
	if len(words) == 0 {
		return fmt.Errorf("no words to create")
	}

	placeholders := make([]string, len(words))
	args := []any{}
	for i, word := range words {
		placeholders[i] = "(?, ?, ?, ?)"
		args = append(args, word.UnitID, word.Word, nullableString(word.Phonetic), word.Definition)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO words (unit_id, word, phonetic, definition)
		VALUES %s
	`, strings.Join(placeholders, ","))

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create words: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update updates word fields (partial update)
func (r *wordRepository) Update(ctx context.Context, id int, req *models.UpdateWordRequest) error {
	var setParts []string
	var args []any

	if req.Word != "" {
		setParts = append(setParts, "word = ?")
		args = append(args, req.Word)
	}
	if req.Phonetic != "" {
		setParts = append(setParts, "phonetic = ?")
		args = append(args, req.Phonetic)
	}
	if req.Definition != "" {
		setParts = append(setParts, "definition = ?")
		args = append(args, req.Definition)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE words
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("word not found")
	}

	return nil
}

// Delete deletes a word by ID
func (r *wordRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM words WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("word not found")
	}

	return nil
}

// nullableString converts an empty string to a SQL NULL
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
