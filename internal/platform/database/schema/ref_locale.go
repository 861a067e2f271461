package schema

// RefLocaleTable represents the 'ref.locale' table
type RefLocaleTable struct {
	Table      string
	Code       string
	Name       string
	NativeName string
}

// RefLocale is the schema definition for ref.locale
var RefLocale = RefLocaleTable{
	Table:      "ref.locale",
	Code:       "code",
	Name:       "name",
	NativeName: "nativename",
}

func (t RefLocaleTable) Columns() []string { return []string{t.Code, t.Name, t.NativeName} }
