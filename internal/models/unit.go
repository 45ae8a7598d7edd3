package models

// Unit represents a unit of words inside a grade
type Unit struct {
	ID        int    `json:"id"`
	GradeID   int    `json:"gradeId"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// UnitListItem represents a unit in catalog listings with its word count
type UnitListItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	WordCount int    `json:"wordCount"`
}

// CreateUnitRequest represents a unit creation request
type CreateUnitRequest struct {
	GradeID   int    `json:"gradeId"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateUnitRequest represents a partial unit update request
type UpdateUnitRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sortOrder"`
}
