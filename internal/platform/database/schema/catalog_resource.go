package schema

// CatalogResourceTable represents the 'catalog.resource' table
type CatalogResourceTable struct {
	Table     string
	ID        string
	Slug      string
	URL       string
	Format    string
	CreatedAt string
	UpdatedAt string
}

// CatalogResource is the schema definition for catalog.resource
var CatalogResource = CatalogResourceTable{
	Table:     "catalog.resource",
	ID:        "id",
	Slug:      "slug",
	URL:       "url",
	Format:    "format",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogResourceTable) Columns() []string {
	return []string{t.ID, t.Slug, t.URL, t.Format, t.CreatedAt, t.UpdatedAt}
}
