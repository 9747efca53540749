package schema

// CoreParagraphTable represents the 'core.paragraph' table
type CoreParagraphTable struct {
	Table            string
	ID               string
	ChapterID        string
	ParagraphNumber  string
	Content          string
	CreatedAt        string
	NumberConstraint string
}

// CoreParagraph is the schema definition for core.paragraph
var CoreParagraph = CoreParagraphTable{
	Table:            "core.paragraph",
	ID:               "id",
	ChapterID:        "chapterid",
	ParagraphNumber:  "paragraphnumber",
	Content:          "content",
	CreatedAt:        "createdat",
	NumberConstraint: "paragraph_chapterid_paragraphnumber_key",
}

func (t CoreParagraphTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.ParagraphNumber, t.Content, t.CreatedAt}
}
