package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	AuthorID    string
	PublisherID string
	CreatedAt   string
	UpdatedAt   string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:       "core.book",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	AuthorID:    "authorid",
	PublisherID: "publisherid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.AuthorID, t.PublisherID, t.CreatedAt, t.UpdatedAt}
}
