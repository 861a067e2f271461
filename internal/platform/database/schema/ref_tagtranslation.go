package schema

// RefTagTranslationTable represents the 'ref.tagtranslation' table
type RefTagTranslationTable struct {
	Table  string
	TagID  string
	Locale string
	Label  string
}

// RefTagTranslation is the schema definition for ref.tagtranslation
var RefTagTranslation = RefTagTranslationTable{
	Table:  "ref.tagtranslation",
	TagID:  "tagid",
	Locale: "locale",
	Label:  "label",
}
