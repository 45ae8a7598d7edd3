package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabbook/backend/internal/models"
)

func TestUnitRepository_GetByGradeID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success with word counts",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "sort_order", "word_count"}).
					AddRow(1, "Unit 1", 1, 12).
					AddRow(2, "Unit 2", 2, 0)
				mock.ExpectQuery(`SELECT u.id, u.name, u.sort_order, COUNT\(w.id\) AS word_count`).
					WithArgs(3).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "empty result",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT u.id, u.name, u.sort_order, COUNT\(w.id\) AS word_count`).
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort_order", "word_count"}))
			},
			expectedCount: 0,
		},
		{
			name: "database query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT u.id, u.name, u.sort_order, COUNT\(w.id\) AS word_count`).
					WithArgs(3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "sort_order", "word_count"}).
					AddRow("invalid", "Unit 1", 1, 12)
				mock.ExpectQuery(`SELECT u.id, u.name, u.sort_order, COUNT\(w.id\) AS word_count`).
					WithArgs(3).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewUnitRepository(db)

			tt.setupMock(mock)

			units, err := repo.GetByGradeID(context.Background(), 3)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, units)
			} else {
				assert.NoError(t, err)
				assert.Len(t, units, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUnitRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		rows := sqlmock.NewRows([]string{"id", "grade_id", "name", "sort_order"}).
			AddRow(10, 3, "Unit 1", 1)
		mock.ExpectQuery(`SELECT id, grade_id, name, sort_order`).
			WithArgs(10).
			WillReturnRows(rows)

		unit, err := repo.GetByID(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, 10, unit.ID)
		assert.Equal(t, 3, unit.GradeID)
		assert.Equal(t, "Unit 1", unit.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectQuery(`SELECT id, grade_id, name, sort_order`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		unit, err := repo.GetByID(context.Background(), 99)

		require.EqualError(t, err, "unit not found")
		assert.Nil(t, unit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectQuery(`SELECT id, grade_id, name, sort_order`).
			WithArgs(10).
			WillReturnError(errors.New("database error"))

		_, err := repo.GetByID(context.Background(), 10)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnitRepository_Create(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewUnitRepository(db)

	mock.ExpectExec(`INSERT INTO units`).
		WithArgs(3, "Unit 1", 1).
		WillReturnResult(sqlmock.NewResult(10, 1))

	unit := &models.Unit{GradeID: 3, Name: "Unit 1", SortOrder: 1}
	err := repo.Create(context.Background(), unit)

	require.NoError(t, err)
	assert.Equal(t, 10, unit.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitRepository_Update(t *testing.T) {
	t.Run("sort order only", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectExec(`UPDATE units`).
			WithArgs(4, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), 10, &models.UpdateUnitRequest{SortOrder: intPtr(4)})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectExec(`UPDATE units`).
			WithArgs("Unit 9", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 99, &models.UpdateUnitRequest{Name: "Unit 9"})

		require.EqualError(t, err, "unit not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnitRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectExec(`DELETE FROM units`).
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 10))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewUnitRepository(db)

		mock.ExpectExec(`DELETE FROM units`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.EqualError(t, repo.Delete(context.Background(), 99), "unit not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
