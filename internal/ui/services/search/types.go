package search

// DefaultFields are searched when no searchable fields are configured
var DefaultFields = []string{"title", "description"}

// State holds search state
type State struct {
	Term   string
	Fields []string
}
