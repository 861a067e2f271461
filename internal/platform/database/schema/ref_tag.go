package schema

// RefTagTable represents the 'ref.tag' table
type RefTagTable struct {
	Table     string
	ID        string
	CreatedAt string
}

// RefTag is the schema definition for ref.tag
var RefTag = RefTagTable{
	Table:     "ref.tag",
	ID:        "id",
	CreatedAt: "createdat",
}
