package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"collectionview/internal/domain"
	"collectionview/internal/ui/coordinator"
	"collectionview/internal/ui/input"
	inputtypes "collectionview/internal/ui/input/types"
	"collectionview/internal/ui/state"
	"collectionview/internal/ui/views"
)

// ViewModel transforms controller and UI state into view-ready data
type ViewModel struct {
	coord        *coordinator.Coordinator[domain.Item]
	state        *state.AppState
	input        *input.Handler
	help         help.Model
	tableColumns []string
	width        int
	height       int
	helpContent  func(width int) string
}

// NewViewModel creates a new view model
func NewViewModel(coord *coordinator.Coordinator[domain.Item], appState *state.AppState, handler *input.Handler,
	tableColumns []string, helpContent func(width int) string) *ViewModel {
	return &ViewModel{
		coord:        coord,
		state:        appState,
		input:        handler,
		help:         help.New(),
		tableColumns: tableColumns,
		helpContent:  helpContent,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width - 4
}

// HelpLine renders the footer for the current input mode
func (vm *ViewModel) HelpLine() string {
	keys := vm.input.Keys()
	if vm.input.CurrentMode() == inputtypes.ModeMove {
		return vm.help.View(inputtypes.MoveKeyMap{KeyMap: keys})
	}
	return vm.help.View(keys)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	c := vm.coord
	q := c.Query()
	features := c.Features()

	selected := make(map[string]bool, c.SelectedCount())
	for _, id := range c.Selected() {
		selected[id] = true
	}

	var badges []views.FilterBadge
	for _, def := range c.Filters() {
		if v, ok := q.ActiveFilters[def.ID]; ok {
			badges = append(badges, views.FilterBadge{Label: def.Label, Value: v})
		}
	}

	st := views.ViewState{
		Width:  vm.width,
		Height: vm.height,

		Items:          c.Visible(),
		TotalCount:     c.TotalCount(),
		Cursor:         c.Cursor(),
		ViewportOffset: c.ViewportOffset(),
		ViewportRows:   c.ViewportHeight(),
		Mode:           c.ViewMode(),
		TableColumns:   vm.tableColumns,

		Selectable:    features.Selection,
		Selected:      selected,
		SelectedCount: c.SelectedCount(),
		AllSelected:   c.IsAllSelected(),
		SomeSelected:  c.IsSomeSelected(),

		SearchTerm:    q.SearchTerm,
		Filters:       badges,
		SortKey:       q.SortKey,
		SortDirection: q.SortDirection,

		Drag:       c.DragState(),
		CanReorder: c.CanReorder(),

		Loading:       vm.state.Loading,
		StatusMessage: vm.state.StatusMessage,
		HelpLine:      vm.HelpLine(),

		ShowHelp:           vm.state.ShowHelp,
		HelpScrollOffset:   vm.state.HelpScrollOffset,
		ShowDetail:         vm.state.ShowDetail,
		DetailContent:      vm.state.DetailContent,
		DetailScrollOffset: vm.state.DetailScrollOffset,
	}

	if ti := vm.input.TextInput(); ti != nil {
		st.Searching = true
		st.SearchInput = ti.View()
	}
	if st.ShowHelp && vm.helpContent != nil {
		st.HelpContent = vm.helpContent(vm.width)
	}
	return st
}
