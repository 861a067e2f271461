package schema

// CatalogResourceTranslationTable represents the 'catalog.resourcetranslation' table
type CatalogResourceTranslationTable struct {
	Table       string
	ResourceID  string
	Locale      string
	Title       string
	Description string
}

// CatalogResourceTranslation is the schema definition for catalog.resourcetranslation
var CatalogResourceTranslation = CatalogResourceTranslationTable{
	Table:       "catalog.resourcetranslation",
	ResourceID:  "resourceid",
	Locale:      "locale",
	Title:       "title",
	Description: "description",
}
