package schema

// RefPathologyTranslationTable represents the 'ref.pathologytranslation' table
type RefPathologyTranslationTable struct {
	Table       string
	PathologyID string
	Locale      string
	Label       string
	Synonyms    string
}

// RefPathologyTranslation is the schema definition for ref.pathologytranslation
var RefPathologyTranslation = RefPathologyTranslationTable{
	Table:       "ref.pathologytranslation",
	PathologyID: "pathologyid",
	Locale:      "locale",
	Label:       "label",
	Synonyms:    "synonyms",
}
