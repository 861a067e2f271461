package schema

// CatalogAssessmentTable represents the 'catalog.assessment' table
type CatalogAssessmentTable struct {
	Table           string
	ID              string
	Slug            string
	Year            string
	AgeMin          string
	AgeMax          string
	DurationMinutes string
	IsStandardized  string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogAssessment is the schema definition for catalog.assessment
var CatalogAssessment = CatalogAssessmentTable{
	Table:           "catalog.assessment",
	ID:              "id",
	Slug:            "slug",
	Year:            "year",
	AgeMin:          "agemin",
	AgeMax:          "agemax",
	DurationMinutes: "durationminutes",
	IsStandardized:  "isstandardized",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t CatalogAssessmentTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Year, t.AgeMin, t.AgeMax, t.DurationMinutes,
		t.IsStandardized, t.CreatedAt, t.UpdatedAt,
	}
}
