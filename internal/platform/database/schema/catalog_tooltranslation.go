package schema

// CatalogToolTranslationTable represents the 'catalog.tooltranslation' table
type CatalogToolTranslationTable struct {
	Table       string
	ToolID      string
	Locale      string
	Name        string
	Description string
}

// CatalogToolTranslation is the schema definition for catalog.tooltranslation
var CatalogToolTranslation = CatalogToolTranslationTable{
	Table:       "catalog.tooltranslation",
	ToolID:      "toolid",
	Locale:      "locale",
	Name:        "name",
	Description: "description",
}
