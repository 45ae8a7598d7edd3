package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// gradeRepository implements GradeRepository
type gradeRepository struct {
	db *sql.DB
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *sql.DB) *gradeRepository {
	return &gradeRepository{
		db: db,
	}
}

// GetAll retrieves all grades ordered by sort order
func (r *gradeRepository) GetAll(ctx context.Context) ([]models.Grade, error) {
	query := `
		SELECT id, name, sort_order
		FROM grades
		ORDER BY sort_order
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grades: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(&grade.ID, &grade.Name, &grade.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, grade)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return grades, nil
}

// Create inserts a new grade
func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (name, sort_order)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, grade.Name, grade.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	grade.ID = int(id)
	return nil
}

// Update updates grade fields (partial update)
func (r *gradeRepository) Update(ctx context.Context, id int, req *models.UpdateGradeRequest) error {
	var setParts []string
	var args []any

	if req.Name != "" {
		setParts = append(setParts, "name = ?")
		args = append(args, req.Name)
	}
	if req.SortOrder != nil {
		setParts = append(setParts, "sort_order = ?")
		args = append(args, *req.SortOrder)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE grades
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update grade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("grade not found")
	}

	return nil
}

// Delete deletes a grade by ID
func (r *gradeRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM grades WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete grade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("grade not found")
	}

	return nil
}
