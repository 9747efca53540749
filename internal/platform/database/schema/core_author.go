package schema

// CoreAuthorTable represents the 'core.author' table
type CoreAuthorTable struct {
	Table     string
	ID        string
	FirstName string
	LastName  string
	CreatedAt string
	UpdatedAt string
}

// CoreAuthor is the schema definition for core.author
var CoreAuthor = CoreAuthorTable{
	Table:     "core.author",
	ID:        "id",
	FirstName: "firstname",
	LastName:  "lastname",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreAuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.CreatedAt, t.UpdatedAt}
}
