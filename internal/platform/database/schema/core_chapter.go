package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table            string
	ID               string
	BookID           string
	ChapterNumber    string
	Title            string
	Content          string
	CreatedAt        string
	UpdatedAt        string
	NumberConstraint string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:            "core.chapter",
	ID:               "id",
	BookID:           "bookid",
	ChapterNumber:    "chapternumber",
	Title:            "title",
	Content:          "content",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	NumberConstraint: "chapter_bookid_chapternumber_key",
}

func (t CoreChapterTable) Columns() []string {
	return []string{t.ID, t.BookID, t.ChapterNumber, t.Title, t.Content, t.CreatedAt, t.UpdatedAt}
}
