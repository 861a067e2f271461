package schema

// RefPathologyTable represents the 'ref.pathology' table
type RefPathologyTable struct {
	Table     string
	ID        string
	Slug      string
	CreatedAt string
}

// RefPathology is the schema definition for ref.pathology
var RefPathology = RefPathologyTable{
	Table:     "ref.pathology",
	ID:        "id",
	Slug:      "slug",
	CreatedAt: "createdat",
}
