package schema

// CorePublisherTable represents the 'core.publisher' table
type CorePublisherTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// CorePublisher is the schema definition for core.publisher
var CorePublisher = CorePublisherTable{
	Table:     "core.publisher",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CorePublisherTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt, t.UpdatedAt}
}
