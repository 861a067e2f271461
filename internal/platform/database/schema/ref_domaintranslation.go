package schema

// RefDomainTranslationTable represents the 'ref.domaintranslation' table
type RefDomainTranslationTable struct {
	Table       string
	DomainID    string
	Locale      string
	Label       string
	Slug        string
	Description string
}

// RefDomainTranslation is the schema definition for ref.domaintranslation
var RefDomainTranslation = RefDomainTranslationTable{
	Table:       "ref.domaintranslation",
	DomainID:    "domainid",
	Locale:      "locale",
	Label:       "label",
	Slug:        "slug",
	Description: "description",
}
