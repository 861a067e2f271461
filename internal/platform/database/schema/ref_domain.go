package schema

// RefDomainTable represents the 'ref.domain' table
type RefDomainTable struct {
	Table     string
	ID        string
	CreatedAt string
}

// RefDomain is the schema definition for ref.domain
var RefDomain = RefDomainTable{
	Table:     "ref.domain",
	ID:        "id",
	CreatedAt: "createdat",
}
