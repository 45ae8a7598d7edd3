package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// unitRepository implements UnitRepository
type unitRepository struct {
	db *sql.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *sql.DB) *unitRepository {
	return &unitRepository{
		db: db,
	}
}

// GetByGradeID retrieves units of a grade with their word counts, ordered by sort order
func (r *unitRepository) GetByGradeID(ctx context.Context, gradeID int) ([]models.UnitListItem, error) {
	query := `
		SELECT u.id, u.name, u.sort_order, COUNT(w.id) AS word_count
		FROM units u
		LEFT JOIN words w ON w.unit_id = u.id
		WHERE u.grade_id = ?
		GROUP BY u.id, u.name, u.sort_order
		ORDER BY u.sort_order
	`

	rows, err := r.db.QueryContext(ctx, query, gradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []models.UnitListItem
	for rows.Next() {
		var unit models.UnitListItem
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.SortOrder, &unit.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return units, nil
}

// GetByID retrieves a unit by ID
func (r *unitRepository) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	query := `
		SELECT id, grade_id, name, sort_order
		FROM units
		WHERE id = ?
		LIMIT 1
	`

	unit := &models.Unit{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&unit.ID,
		&unit.GradeID,
		&unit.Name,
		&unit.SortOrder,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unit not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit by ID: %w", err)
	}

	return unit, nil
}

// Create inserts a new unit
func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (grade_id, name, sort_order)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, unit.GradeID, unit.Name, unit.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	unit.ID = int(id)
	return nil
}

// Update updates unit fields (partial update)
func (r *unitRepository) Update(ctx context.Context, id int, req *models.UpdateUnitRequest) error {
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
		UPDATE units
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("unit not found")
	}

	return nil
}

// Delete deletes a unit by ID
func (r *unitRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM units WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("unit not found")
	}

	return nil
}
