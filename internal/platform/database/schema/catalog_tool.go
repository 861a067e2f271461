package schema

// CatalogToolTable represents the 'catalog.tool' table
type CatalogToolTable struct {
	Table     string
	ID        string
	Slug      string
	URL       string
	CreatedAt string
	UpdatedAt string
}

// CatalogTool is the schema definition for catalog.tool
var CatalogTool = CatalogToolTable{
	Table:     "catalog.tool",
	ID:        "id",
	Slug:      "slug",
	URL:       "url",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogToolTable) Columns() []string {
	return []string{t.ID, t.Slug, t.URL, t.CreatedAt, t.UpdatedAt}
}
