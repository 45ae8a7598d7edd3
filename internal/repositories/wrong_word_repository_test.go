package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabbook/backend/internal/models"
)

func TestWrongWordRepository_RecordMiss(t *testing.T) {
	t.Run("upserts in one statement", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`(?s)INSERT INTO wrong_words.+ON DUPLICATE KEY UPDATE`).
			WithArgs(42, 7).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.RecordMiss(context.Background(), 42, 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`INSERT INTO wrong_words`).
			WithArgs(42, 7).
			WillReturnError(errors.New("database error"))

		err := repo.RecordMiss(context.Background(), 42, 7)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_RecordHit(t *testing.T) {
	t.Run("increments streak", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`UPDATE wrong_words`).
			WithArgs(42, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecordHit(context.Background(), 42, 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ledger entry is not an error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`UPDATE wrong_words`).
			WithArgs(42, 7).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RecordHit(context.Background(), 42, 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_GetReviewWords(t *testing.T) {
	columns := []string{"id", "unit_id", "word", "phonetic", "definition"}

	t.Run("without importance filter", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, 10, "apple", nil, "苹果").
			AddRow(2, 10, "banana", "/bəˈnɑːnə/", "香蕉")
		mock.ExpectQuery(`SELECT w.id, w.unit_id, w.word, w.phonetic, w.definition`).
			WithArgs(42).
			WillReturnRows(rows)

		words, err := repo.GetReviewWords(context.Background(), 42, 0)

		require.NoError(t, err)
		assert.Len(t, words, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with importance filter", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, 10, "apple", nil, "苹果")
		mock.ExpectQuery(`AND ww.importance >= \?`).
			WithArgs(42, 2).
			WillReturnRows(rows)

		words, err := repo.GetReviewWords(context.Background(), 42, 2)

		require.NoError(t, err)
		assert.Len(t, words, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectQuery(`SELECT w.id, w.unit_id, w.word, w.phonetic, w.definition`).
			WithArgs(42).
			WillReturnError(errors.New("database error"))

		words, err := repo.GetReviewWords(context.Background(), 42, 0)

		require.Error(t, err)
		assert.Nil(t, words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_GetByUserID(t *testing.T) {
	columns := []string{"id", "word_id", "word", "phonetic", "definition", "wrong_count", "correct_streak", "importance"}

	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, 7, "apple", nil, "苹果", 3, 1, 2).
			AddRow(2, 8, "banana", "/bəˈnɑːnə/", "香蕉", 1, 0, 1)
		mock.ExpectQuery(`SELECT ww.id, ww.word_id, w.word, w.phonetic, w.definition`).
			WithArgs(42).
			WillReturnRows(rows)

		items, err := repo.GetByUserID(context.Background(), 42, 0)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "apple", items[0].Word)
		assert.Equal(t, 3, items[0].WrongCount)
		assert.Empty(t, items[0].Phonetic)
		assert.Equal(t, "/bəˈnɑːnə/", items[1].Phonetic)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with importance filter", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, 7, "apple", nil, "苹果", 3, 1, 2)
		mock.ExpectQuery(`AND ww.importance >= \?`).
			WithArgs(42, 2).
			WillReturnRows(rows)

		items, err := repo.GetByUserID(context.Background(), 42, 2)

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow("invalid", 7, "apple", nil, "苹果", 3, 1, 2)
		mock.ExpectQuery(`SELECT ww.id, ww.word_id, w.word, w.phonetic, w.definition`).
			WithArgs(42).
			WillReturnRows(rows)

		items, err := repo.GetByUserID(context.Background(), 42, 0)

		require.Error(t, err)
		assert.Nil(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_Update(t *testing.T) {
	t.Run("importance and mastered scoped to owner", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`UPDATE wrong_words`).
			WithArgs(3, true, 7, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), 7, 42, &models.UpdateWrongWordRequest{
			Importance: intPtr(3),
			Mastered:   boolPtr(true),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields", func(t *testing.T) {
		db, _, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		err := repo.Update(context.Background(), 7, 42, &models.UpdateWrongWordRequest{})

		require.EqualError(t, err, "no fields to update")
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`UPDATE wrong_words`).
			WithArgs(2, 99, 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 99, 42, &models.UpdateWrongWordRequest{Importance: intPtr(2)})

		require.EqualError(t, err, "wrong word entry not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`DELETE FROM wrong_words`).
			WithArgs(7, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 7, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectExec(`DELETE FROM wrong_words`).
			WithArgs(99, 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.EqualError(t, repo.Delete(context.Background(), 99, 42), "wrong word entry not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWrongWordRepository_CountByUserID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		rows := sqlmock.NewRows([]string{"count", "important"}).AddRow(8, 3)
		mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(importance >= 2\), 0\)`).
			WithArgs(42).
			WillReturnRows(rows)

		total, important, err := repo.CountByUserID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, 8, total)
		assert.Equal(t, 3, important)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewWrongWordRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(importance >= 2\), 0\)`).
			WithArgs(42).
			WillReturnError(errors.New("database error"))

		_, _, err := repo.CountByUserID(context.Background(), 42)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
