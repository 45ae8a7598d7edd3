package services

import (
	"context"
	"fmt"

	"github.com/vocabbook/backend/internal/models"
)

// WrongWordRepository is the interface that wraps methods for WrongWord table data access
type WrongWordRepository interface {
	// GetByUserID retrieves the user's wrong word ledger joined with word data.
	//
	// "minImportance" filters entries below the given importance; zero disables the filter.
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetByUserID(ctx context.Context, userID, minImportance int) ([]models.WrongWordListItem, error)
	// Update applies a partial update to one of the user's ledger entries.
	//
	// "id" parameter identifies the entry, "userID" scopes it to its owner.
	// If some error occurs during data update, the error will be returned.
	Update(ctx context.Context, id, userID int, req *models.UpdateWrongWordRequest) error
	// Delete removes one of the user's ledger entries.
	Delete(ctx context.Context, id, userID int) error
	// CountByUserID returns the total and important entry counts for the user.
	CountByUserID(ctx context.Context, userID int) (total int, important int, err error)
}

// wrongWordService implements the wrong word book operations
type wrongWordService struct {
	wrongWordRepo WrongWordRepository
}

// NewWrongWordService creates a new wrong word service
func NewWrongWordService(wrongWordRepo WrongWordRepository) *wrongWordService {
	return &wrongWordService{wrongWordRepo: wrongWordRepo}
}

// List retrieves the user's wrong word book, optionally filtered by importance
func (s *wrongWordService) List(ctx context.Context, userID, minImportance int) ([]models.WrongWordListItem, error) {
	if minImportance < 0 || minImportance > 3 {
		return nil, fmt.Errorf("importance must be between 1 and 3")
	}

	items, err := s.wrongWordRepo.GetByUserID(ctx, userID, minImportance)
	if err != nil {
		return nil, fmt.Errorf("failed to get wrong words: %w", err)
	}
	if items == nil {
		items = []models.WrongWordListItem{}
	}
	return items, nil
}

// Update changes the importance or mastered flag of a ledger entry
func (s *wrongWordService) Update(ctx context.Context, id, userID int, req *models.UpdateWrongWordRequest) error {
	if id <= 0 {
		return fmt.Errorf("invalid wrong word id")
	}
	if req.Importance == nil && req.Mastered == nil {
		return fmt.Errorf("no fields to update")
	}
	if req.Importance != nil && (*req.Importance < 1 || *req.Importance > 3) {
		return fmt.Errorf("importance must be between 1 and 3")
	}

	return s.wrongWordRepo.Update(ctx, id, userID, req)
}

// Delete removes a ledger entry
func (s *wrongWordService) Delete(ctx context.Context, id, userID int) error {
	if id <= 0 {
		return fmt.Errorf("invalid wrong word id")
	}

	return s.wrongWordRepo.Delete(ctx, id, userID)
}
