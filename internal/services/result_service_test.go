package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// recordingStore records every persistence call in order across both repositories
type recordingStore struct {
	calls    []string
	batchErr error
	hitErr   error
	missErr  error
}

func (r *recordingStore) CreateBatch(ctx context.Context, userID int, mode models.QuizMode, outcomes []models.QuizOutcome) error {
	r.calls = append(r.calls, fmt.Sprintf("batch:%d", len(outcomes)))
	return r.batchErr
}

func (r *recordingStore) CountToday(ctx context.Context, userID int) (int, int, error) {
	return 0, 0, nil
}

func (r *recordingStore) RecordHit(ctx context.Context, userID, wordID int) error {
	r.calls = append(r.calls, fmt.Sprintf("hit:%d", wordID))
	return r.hitErr
}

func (r *recordingStore) RecordMiss(ctx context.Context, userID, wordID int) error {
	r.calls = append(r.calls, fmt.Sprintf("miss:%d", wordID))
	return r.missErr
}

func mixedOutcomes() []models.QuizOutcome {
	return []models.QuizOutcome{
		{WordID: 10, Word: "cat", IsCorrect: false, UserAnswer: "cot"},
		{WordID: 20, Word: "dog", IsCorrect: true, UserAnswer: "dog"},
		{WordID: 30, Word: "bird", IsCorrect: false, UserAnswer: ""},
	}
}

func TestResultService_Persist_OrderedScoring(t *testing.T) {
	store := &recordingStore{}
	svc := NewResultService(store, store, zap.NewNop())

	err := svc.Persist(context.Background(), 42, models.ModeCnToEn, mixedOutcomes())

	require.NoError(t, err)
	assert.Equal(t, []string{"batch:3", "miss:10", "hit:20", "miss:30"}, store.calls)
}

func TestResultService_Persist_EmptyOutcomes(t *testing.T) {
	store := &recordingStore{}
	svc := NewResultService(store, store, zap.NewNop())

	err := svc.Persist(context.Background(), 42, models.ModeFlashcard, nil)

	require.NoError(t, err)
	assert.Empty(t, store.calls)
}

func TestResultService_Persist_BatchFailureSkipsScoring(t *testing.T) {
	store := &recordingStore{batchErr: errors.New("database error")}
	svc := NewResultService(store, store, zap.NewNop())

	err := svc.Persist(context.Background(), 42, models.ModeCnToEn, mixedOutcomes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save quiz records")
	assert.Equal(t, []string{"batch:3"}, store.calls)
}

func TestResultService_Persist_ScoringFailureStops(t *testing.T) {
	store := &recordingStore{missErr: errors.New("database error")}
	svc := NewResultService(store, store, zap.NewNop())

	err := svc.Persist(context.Background(), 42, models.ModeCnToEn, mixedOutcomes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to score word 10")
	assert.Equal(t, []string{"batch:3", "miss:10"}, store.calls)
}

func TestResultService_Persist_HitFailure(t *testing.T) {
	store := &recordingStore{hitErr: errors.New("database error")}
	svc := NewResultService(store, store, zap.NewNop())

	err := svc.Persist(context.Background(), 42, models.ModeListenWrite, mixedOutcomes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to score word 20")
	assert.Equal(t, []string{"batch:3", "miss:10", "hit:20"}, store.calls)
}
