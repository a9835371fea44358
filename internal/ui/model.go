package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/ui/commands"
	"collectionview/internal/ui/coordinator"
	"collectionview/internal/ui/handlers"
	"collectionview/internal/ui/input"
	inputtypes "collectionview/internal/ui/input/types"
	"collectionview/internal/ui/services/navigation"
	"collectionview/internal/ui/state"
	"collectionview/internal/ui/viewmodels"
	"collectionview/internal/ui/views"
)

// Options configures the UI model
type Options struct {
	Logger        *zap.Logger
	Executor      *commands.Executor // nil when items are supplied directly
	MarkdownStyle string
	SaveOrder     bool
	Watch         bool
	WatchDelay    time.Duration
	TableColumns  []string
}

// Model represents the UI state
type Model struct {
	coord  *coordinator.Coordinator[domain.Item]
	state  *state.AppState
	logger *zap.Logger
	opts   Options

	width  int
	height int

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpRender   *HelpRenderer

	// controller events are queued while an update runs and handled after it
	pending     []domain.DomainEvent
	unsubscribe func()

	searchBefore string // term to restore when a search edit is cancelled
	statusSeq    int
}

// NewModel creates a new UI model driving coord
func NewModel(coord *coordinator.Coordinator[domain.Item], opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := inputtypes.DefaultKeyMap()

	m := &Model{
		coord:        coord,
		state:        state.NewAppState(),
		logger:       logger,
		opts:         opts,
		renderer:     views.NewRenderer(),
		cmdExecutor:  opts.Executor,
		inputHandler: input.New(keys),
		helpRender:   NewHelpRenderer(keys),
	}

	m.eventHandler = handlers.NewEventHandler(m.state, coord, views.NewDetailRenderer(opts.MarkdownStyle), opts.Executor,
		handlers.Hooks{
			Width:       func() int { return m.width },
			Relayout:    m.relayout,
			DragEnded:   m.leaveMoveMode,
			SaveEnabled: opts.SaveOrder,
		}, logger)
	m.viewModel = viewmodels.NewViewModel(coord, m.state, m.inputHandler, opts.TableColumns, m.helpRender.renderHelpContent)

	m.unsubscribe = coord.Bus().SubscribeAll(func(e domain.DomainEvent) {
		m.pending = append(m.pending, e)
	})
	return m
}

// Close detaches the model from the controller's event bus
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init starts loading and, when configured, watching the sources
func (m *Model) Init() tea.Cmd {
	if m.cmdExecutor == nil {
		return nil
	}
	m.state.Loading = m.cmdExecutor.HasSources()
	cmds := []tea.Cmd{m.cmdExecutor.ExecuteLoad(false)}
	if m.opts.Watch {
		cmds = append(cmds, m.cmdExecutor.ExecuteWatch(m.opts.WatchDelay))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.cmdExecutor != nil {
		msg = m.cmdExecutor.Accept(msg)
	}
	status := m.state.StatusMessage
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg)...)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case commands.ItemsLoadedMsg:
		m.state.Loading = false
		if msg.Err != nil {
			m.state.StatusMessage = fmt.Sprintf("Error: %v", msg.Err)
			break
		}
		m.coord.SetItems(msg.Items)
		if msg.Reload {
			m.state.StatusMessage = fmt.Sprintf("Reloaded %d items", len(msg.Items))
		}

	case commands.OrderSavedMsg:
		if msg.Err != nil {
			m.state.StatusMessage = fmt.Sprintf("Error saving order: %v", msg.Err)
		} else {
			m.state.StatusMessage = "Order saved"
		}

	case commands.SourceChangedMsg:
		if msg.Change.Err != nil {
			m.logger.Warn("watch error, reloading", zap.Error(msg.Change.Err))
		}
		cmds = append(cmds, m.cmdExecutor.ExecuteLoad(true), m.cmdExecutor.ExecuteWait())

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.StatusMessage = ""
		}
		return m, nil

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.drainEvents()...)

	if m.state.StatusMessage != "" && m.state.StatusMessage != status {
		m.statusSeq++
		cmds = append(cmds, clearStatusAfter(m.statusSeq))
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	m.viewModel.SetDimensions(m.width, m.height)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) handleKey(msg tea.KeyMsg) []tea.Cmd {
	if m.state.PopupOpen() {
		return m.handlePopupKey(msg)
	}

	if m.inputHandler.CurrentMode() == inputtypes.ModeNormal {
		m.searchBefore = m.coord.Query().SearchTerm
	}

	ctx := &input.ModelContext{Coordinator: m.coord}
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return cmds
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) []tea.Cmd {
	content := m.state.DetailContent
	if !m.state.ShowDetail {
		content = m.helpRender.renderHelpContent(m.width)
	}
	maxScroll := views.MaxPopupScroll(content, m.height, m.renderer.Styles().InfoBox)

	switch msg.String() {
	case "ctrl+c":
		return []tea.Cmd{tea.Quit}
	case "esc", "q", "?", "enter":
		if m.state.ShowDetail {
			m.state.CloseDetail()
		} else {
			m.state.ToggleHelp()
		}
	case "up", "k":
		m.state.ScrollPopup(-1, maxScroll)
	case "down", "j":
		m.state.ScrollPopup(1, maxScroll)
	case "pgup", "ctrl+u":
		m.state.ScrollPopup(-10, maxScroll)
	case "pgdown", "ctrl+d", " ":
		m.state.ScrollPopup(10, maxScroll)
	}
	return nil
}

// processAction executes one input action against the controller
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	c := m.coord

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		c.Navigate(a.Direction)

	case inputtypes.ToggleSelectAction:
		if item, ok := c.CursorItem(); ok {
			c.ToggleSelected(item.Key)
		}
	case inputtypes.ToggleSelectAllAction:
		c.ToggleSelectAll()
	case inputtypes.DeselectAllAction:
		c.SelectNone()

	case inputtypes.UpdateTextAction:
		c.SetSearch(a.Text)
	case inputtypes.SubmitTextAction:
		c.SetSearch(a.Text)
	case inputtypes.CancelTextAction:
		c.SetSearch(m.searchBefore)

	case inputtypes.CycleFilterAction:
		for _, def := range c.Filters() {
			if len(def.Values) > 0 {
				c.CycleFilter(def.ID)
				break
			}
		}
	case inputtypes.ClearQueryAction:
		c.ResetQuery()
	case inputtypes.CycleSortAction:
		c.CycleSort()
	case inputtypes.FlipSortAction:
		c.FlipSort()
	case inputtypes.CycleViewModeAction:
		c.CycleViewMode()

	case inputtypes.GrabAction:
		item, ok := c.CursorItem()
		if !ok || !c.DragStart(item.Key) {
			m.inputHandler.Reset()
			m.state.StatusMessage = "This item can't be moved"
		}
	case inputtypes.MoveTargetAction:
		c.Navigate(a.Direction)
		if item, ok := c.CursorItem(); ok {
			c.DragOver(item.Key)
		}
	case inputtypes.DropAction:
		c.Drop("")
	case inputtypes.CancelDragAction:
		c.DragEnd()

	case inputtypes.ActivateAction:
		c.ActivateCursor()
	case inputtypes.ToggleHelpAction:
		m.state.ToggleHelp()

	case inputtypes.QuitAction:
		c.DragEnd()
		return tea.Quit
	}
	return nil
}

// handleMouse turns press, motion and release into the drag gesture:
// press grabs, motion moves the drop target, release drops or activates
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.state.PopupOpen() || m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
		return
	}
	c := m.coord

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		c.Navigate(navigation.DirectionUp)
		return
	case tea.MouseButtonWheelDown:
		c.Navigate(navigation.DirectionDown)
		return
	}

	m.viewModel.SetDimensions(m.width, m.height)
	st := m.viewModel.BuildViewState()
	idx, hit := views.HitTest(st, msg.X, msg.Y)
	var id string
	if hit {
		id = st.Items[idx].Key
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !hit {
			return
		}
		m.state.PressID = id
		c.MoveCursor(idx)
		if c.CanReorder() {
			c.DragStart(id)
		}

	case tea.MouseActionMotion:
		if hit && c.DragState().Dragging() {
			c.DragOver(id)
		}

	case tea.MouseActionRelease:
		pressed := m.state.PressID
		m.state.PressID = ""
		switch {
		case pressed == "":
		case hit && id == pressed:
			c.DragEnd()
			c.Activate(id)
		case hit && c.DragState().Dragging():
			c.Drop(id)
		default:
			c.DragEnd()
		}
	}
}

// drainEvents hands queued controller events to the event handler. Handling
// an event may queue more; they are handled in the same pass.
func (m *Model) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for len(m.pending) > 0 {
		e := m.pending[0]
		m.pending = m.pending[1:]
		if cmd := m.eventHandler.HandleEvent(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// relayout pushes the screen geometry of the current view mode into the cursor
func (m *Model) relayout() {
	if m.height == 0 {
		return
	}
	mode := m.coord.ViewMode()
	cols := 1
	if mode == domain.ViewGrid {
		cols = views.GridColumns(m.width)
	}
	m.coord.SetColumns(cols)
	m.coord.SetViewportRows(views.ViewportRows(m.height, mode))
}

func (m *Model) leaveMoveMode() {
	if m.inputHandler.CurrentMode() == inputtypes.ModeMove {
		m.inputHandler.Reset()
	}
}
