package models

// Grade represents a school-year tier in the word catalog
type Grade struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// GradeWithUnits represents a grade together with its units for catalog browsing
type GradeWithUnits struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	SortOrder int            `json:"sortOrder"`
	Units     []UnitListItem `json:"units"`
}

// CreateGradeRequest represents a grade creation request
type CreateGradeRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateGradeRequest represents a partial grade update request
type UpdateGradeRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sortOrder"`
}
