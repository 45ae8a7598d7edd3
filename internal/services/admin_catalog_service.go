package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vocabbook/backend/internal/models"
)

// adminCatalogService implements write access to the grade/unit/word catalog
type adminCatalogService struct {
	gradeRepo GradeRepository
	unitRepo  UnitRepository
	wordRepo  WordRepository
}

// NewAdminCatalogService creates a new admin catalog service
func NewAdminCatalogService(gradeRepo GradeRepository, unitRepo UnitRepository, wordRepo WordRepository) *adminCatalogService {
	return &adminCatalogService{
		gradeRepo: gradeRepo,
		unitRepo:  unitRepo,
		wordRepo:  wordRepo,
	}
}

// CreateGrade creates a new grade
func (s *adminCatalogService) CreateGrade(ctx context.Context, req *models.CreateGradeRequest) (*models.Grade, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("grade name is required")
	}

	grade := &models.Grade{
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

// UpdateGrade applies a partial update to a grade
func (s *adminCatalogService) UpdateGrade(ctx context.Context, id int, req *models.UpdateGradeRequest) error {
	if id <= 0 {
		return fmt.Errorf("invalid grade id")
	}
	if req.Name == "" && req.SortOrder == nil {
		return fmt.Errorf("no fields to update")
	}

	return s.gradeRepo.Update(ctx, id, req)
}

// DeleteGrade removes a grade
func (s *adminCatalogService) DeleteGrade(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid grade id")
	}

	return s.gradeRepo.Delete(ctx, id)
}

// CreateUnit creates a new unit inside a grade
func (s *adminCatalogService) CreateUnit(ctx context.Context, req *models.CreateUnitRequest) (*models.Unit, error) {
	if req.GradeID <= 0 {
		return nil, fmt.Errorf("invalid grade id")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("unit name is required")
	}

	unit := &models.Unit{
		GradeID:   req.GradeID,
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// UpdateUnit applies a partial update to a unit
func (s *adminCatalogService) UpdateUnit(ctx context.Context, id int, req *models.UpdateUnitRequest) error {
	if id <= 0 {
		return fmt.Errorf("invalid unit id")
	}
	if req.Name == "" && req.SortOrder == nil {
		return fmt.Errorf("no fields to update")
	}

	return s.unitRepo.Update(ctx, id, req)
}

// DeleteUnit removes a unit
func (s *adminCatalogService) DeleteUnit(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid unit id")
	}

	return s.unitRepo.Delete(ctx, id)
}

// CreateWord creates a new word inside a unit
func (s *adminCatalogService) CreateWord(ctx context.Context, req *models.CreateWordRequest) (*models.Word, error) {
	word, err := wordFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.wordRepo.Create(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

// CreateWordsBatch creates multiple words inside a unit in one transaction
func (s *adminCatalogService) CreateWordsBatch(ctx context.Context, req *models.BatchCreateWordsRequest) (int, error) {
	if req.UnitID <= 0 {
		return 0, fmt.Errorf("invalid unit id")
	}
	if len(req.Words) == 0 {
		return 0, fmt.Errorf("no words to create")
	}

	words := make([]models.Word, 0, len(req.Words))
	for i := range req.Words {
		req.Words[i].UnitID = req.UnitID
		word, err := wordFromRequest(&req.Words[i])
		if err != nil {
			return 0, fmt.Errorf("word %d: %w", i+1, err)
		}
		words = append(words, *word)
	}

	if err := s.wordRepo.CreateBatch(ctx, words); err != nil {
		return 0, err
	}

	return len(words), nil
}

// UpdateWord applies a partial update to a word
func (s *adminCatalogService) UpdateWord(ctx context.Context, id int, req *models.UpdateWordRequest) error {
	if id <= 0 {
		return fmt.Errorf("invalid word id")
	}
	if req.Word == "" && req.Phonetic == "" && req.Definition == "" {
		return fmt.Errorf("no fields to update")
	}

	return s.wordRepo.Update(ctx, id, req)
}

// DeleteWord removes a word
func (s *adminCatalogService) DeleteWord(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid word id")
	}

	return s.wordRepo.Delete(ctx, id)
}

func wordFromRequest(req *models.CreateWordRequest) (*models.Word, error) {
	if req.UnitID <= 0 {
		return nil, fmt.Errorf("invalid unit id")
	}
	if strings.TrimSpace(req.Word) == "" {
		return nil, fmt.Errorf("word text is required")
	}
	if strings.TrimSpace(req.Definition) == "" {
		return nil, fmt.Errorf("word definition is required")
	}

	return &models.Word{
		UnitID:     req.UnitID,
		Word:       strings.TrimSpace(req.Word),
		Phonetic:   strings.TrimSpace(req.Phonetic),
		Definition: strings.TrimSpace(req.Definition),
	}, nil
}
