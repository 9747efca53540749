package schema

// CoreSentenceTable represents the 'core.sentence' table
type CoreSentenceTable struct {
	Table            string
	ID               string
	ParagraphID      string
	SentenceNumber   string
	Content          string
	CreatedAt        string
	NumberConstraint string
}

// CoreSentence is the schema definition for core.sentence
var CoreSentence = CoreSentenceTable{
	Table:            "core.sentence",
	ID:               "id",
	ParagraphID:      "paragraphid",
	SentenceNumber:   "sentencenumber",
	Content:          "content",
	CreatedAt:        "createdat",
	NumberConstraint: "sentence_paragraphid_sentencenumber_key",
}

func (t CoreSentenceTable) Columns() []string {
	return []string{t.ID, t.ParagraphID, t.SentenceNumber, t.Content, t.CreatedAt}
}
