package services

import (
	"context"
	"fmt"

	"github.com/vocabbook/backend/internal/models"
)

// GradeRepository is the interface that wraps methods for Grade table data access
type GradeRepository interface {
	// GetAll retrieves all grades ordered by sort order.
	//
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Grade, error)
	// Create inserts a new grade and fills in its generated ID.
	//
	// If some error occurs during data creation, the error will be returned.
	Create(ctx context.Context, grade *models.Grade) error
	// Update applies a partial update to a grade.
	//
	// "id" parameter is used to identify the grade.
	// If some error occurs during data update, the error will be returned.
	Update(ctx context.Context, id int, req *models.UpdateGradeRequest) error
	// Delete removes a grade.
	//
	// "id" parameter is used to identify the grade.
	// If some error occurs during data deletion, the error will be returned.
	Delete(ctx context.Context, id int) error
}

// UnitRepository is the interface that wraps methods for Unit table data access
type UnitRepository interface {
	// GetByGradeID retrieves units of a grade with word counts, ordered by sort order.
	//
	// "gradeID" parameter is used to identify the grade.
	// Please reference GradeRepository.GetAll for error values.
	GetByGradeID(ctx context.Context, gradeID int) ([]models.UnitListItem, error)
	// GetByID retrieves a unit by its ID.
	//
	// Please reference GradeRepository.GetAll for error values.
	GetByID(ctx context.Context, id int) (*models.Unit, error)
	// Create inserts a new unit and fills in its generated ID.
	Create(ctx context.Context, unit *models.Unit) error
	// Update applies a partial update to a unit.
	Update(ctx context.Context, id int, req *models.UpdateUnitRequest) error
	// Delete removes a unit.
	Delete(ctx context.Context, id int) error
}

// WordRepository is the interface that wraps methods for Word table data access
type WordRepository interface {
	// GetByUnitID retrieves all words of a unit ordered by ID.
	//
	// "unitID" parameter is used to identify the unit.
	// Please reference GradeRepository.GetAll for error values.
	GetByUnitID(ctx context.Context, unitID int) ([]models.Word, error)
	// Create inserts a new word and fills in its generated ID.
	Create(ctx context.Context, word *models.Word) error
	// CreateBatch inserts multiple words in one transaction.
	CreateBatch(ctx context.Context, words []models.Word) error
	// Update applies a partial update to a word.
	Update(ctx context.Context, id int, req *models.UpdateWordRequest) error
	// Delete removes a word.
	Delete(ctx context.Context, id int) error
}

// catalogService implements read access to the grade/unit/word catalog
type catalogService struct {
	gradeRepo GradeRepository
	unitRepo  UnitRepository
	wordRepo  WordRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(gradeRepo GradeRepository, unitRepo UnitRepository, wordRepo WordRepository) *catalogService {
	return &catalogService{
		gradeRepo: gradeRepo,
		unitRepo:  unitRepo,
		wordRepo:  wordRepo,
	}
}

// GetGradesWithUnits retrieves all grades with their units and word counts
func (s *catalogService) GetGradesWithUnits(ctx context.Context) ([]models.GradeWithUnits, error) {
	grades, err := s.gradeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get grades: %w", err)
	}

	result := make([]models.GradeWithUnits, len(grades))
	for i, grade := range grades {
		units, err := s.unitRepo.GetByGradeID(ctx, grade.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get units for grade %d: %w", grade.ID, err)
		}
		if units == nil {
			units = []models.UnitListItem{}
		}
		result[i] = models.GradeWithUnits{
			ID:        grade.ID,
			Name:      grade.Name,
			SortOrder: grade.SortOrder,
			Units:     units,
		}
	}

	return result, nil
}

// GetUnitWords retrieves the unit and its words for browsing
func (s *catalogService) GetUnitWords(ctx context.Context, unitID int) (*models.Unit, []models.Word, error) {
	if unitID <= 0 {
		return nil, nil, fmt.Errorf("invalid unit id")
	}

	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, nil, err
	}

	words, err := s.wordRepo.GetByUnitID(ctx, unitID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get unit words: %w", err)
	}
	if words == nil {
		words = []models.Word{}
	}

	return unit, words, nil
}
