package author

import "time"

// Author represents the writer of a book.
//
// The id is derived from the canonical DN "sn=<last>,givenName=<first>", so two
// authors with the same name share an identity and the second insert conflicts.
type Author struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	DN        string    `json:"dn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // Case-insensitive match against first and last name
}

// Global field names for validation
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)
