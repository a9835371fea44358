package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"collectionview/internal/ui/input/types"
)

// SearchMode edits the search term; every keystroke updates the view
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

// Enter starts from the active term so a second / refines it
func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.SetValue(ctx.SearchTerm())
		m.textInput.CursorEnd()
	}
	return nil
}
