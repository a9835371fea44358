package state

// AppState holds the UI state the collection controller does not own:
// popups, status text and the mouse gesture in progress
type AppState struct {
	// Popups
	ShowHelp           bool
	HelpScrollOffset   int
	ShowDetail         bool
	DetailID           string
	DetailContent      string
	DetailScrollOffset int

	StatusMessage string // status bar message

	// Mouse gesture: the item under the last left press
	PressID string

	Loading bool // first load still running
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// CloseDetail hides the detail popup
func (s *AppState) CloseDetail() {
	s.ShowDetail = false
	s.DetailID = ""
	s.DetailContent = ""
	s.DetailScrollOffset = 0
}

// ToggleHelp flips the help popup, resetting its scroll position
func (s *AppState) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
	s.HelpScrollOffset = 0
}

// PopupOpen reports whether any popup covers the list
func (s *AppState) PopupOpen() bool {
	return s.ShowHelp || s.ShowDetail
}

// ScrollPopup moves the open popup by delta lines, bounded by [0, max]
func (s *AppState) ScrollPopup(delta, max int) {
	offset := &s.HelpScrollOffset
	if s.ShowDetail {
		offset = &s.DetailScrollOffset
	}
	*offset += delta
	if *offset > max {
		*offset = max
	}
	if *offset < 0 {
		*offset = 0
	}
}
