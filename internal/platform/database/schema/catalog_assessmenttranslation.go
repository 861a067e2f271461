package schema

// CatalogAssessmentTranslationTable represents the 'catalog.assessmenttranslation' table
type CatalogAssessmentTranslationTable struct {
	Table        string
	AssessmentID string
	Locale       string
	Name         string
	Description  string
	Objective    string
	Notes        string
}

// CatalogAssessmentTranslation is the schema definition for catalog.assessmenttranslation
var CatalogAssessmentTranslation = CatalogAssessmentTranslationTable{
	Table:        "catalog.assessmenttranslation",
	AssessmentID: "assessmentid",
	Locale:       "locale",
	Name:         "name",
	Description:  "description",
	Objective:    "objective",
	Notes:        "notes",
}
