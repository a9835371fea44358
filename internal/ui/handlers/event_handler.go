package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/ui/commands"
	"collectionview/internal/ui/coordinator"
	"collectionview/internal/ui/services/reorder"
	"collectionview/internal/ui/state"
	"collectionview/internal/ui/views"
)

// Hooks are the model callbacks the handler needs
type Hooks struct {
	Width       func() int // terminal width, for wrapping the detail popup
	Relayout    func()     // viewport geometry depends on the view mode
	DragEnded   func()     // leave keyboard move mode
	SaveEnabled bool       // write committed orders back to the sources
}

// EventHandler reacts to controller events queued during an update
type EventHandler struct {
	state    *state.AppState
	coord    *coordinator.Coordinator[domain.Item]
	detail   *views.DetailRenderer
	executor *commands.Executor
	hooks    Hooks
	logger   *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, coord *coordinator.Coordinator[domain.Item], detail *views.DetailRenderer,
	executor *commands.Executor, hooks Hooks, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		state:    appState,
		coord:    coord,
		detail:   detail,
		executor: executor,
		hooks:    hooks,
		logger:   logger,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event domain.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.ItemActivatedEvent:
		item, ok := e.Item.(domain.Item)
		if !ok {
			return nil
		}
		width := 80
		if h.hooks.Width != nil {
			width = h.hooks.Width()
		}
		content, err := h.detail.Render(item, width-12)
		if err != nil {
			h.logger.Warn("detail render failed", zap.String("id", e.ID), zap.Error(err))
			content = views.Markdown(item)
		}
		h.state.ShowDetail = true
		h.state.DetailID = e.ID
		h.state.DetailContent = content
		h.state.DetailScrollOffset = 0

	case domain.ItemsReorderedEvent:
		// the controller only reports the order; applying it is the host's job
		items := reorder.Arrange(h.coord.Items(), e.Order)
		h.coord.SetItems(items)
		h.state.StatusMessage = "Moved"
		if h.hooks.SaveEnabled && h.executor != nil {
			return h.executor.ExecuteSaveOrder(items)
		}

	case domain.SortChangedEvent:
		if e.Key == "" {
			h.state.StatusMessage = "Original order"
		} else {
			h.state.StatusMessage = fmt.Sprintf("Sorted by %s (%s)", e.Key, e.Direction)
		}

	case domain.FilterChangedEvent:
		if e.Value == nil {
			h.state.StatusMessage = fmt.Sprintf("Filter %s cleared", e.FilterID)
		} else {
			h.state.StatusMessage = fmt.Sprintf("Filter %s: %s", e.FilterID, domain.FieldText(e.Value))
		}

	case domain.ViewModeChangedEvent:
		h.state.StatusMessage = ""
		if h.hooks.Relayout != nil {
			h.hooks.Relayout()
		}

	case domain.DragStateChangedEvent:
		if e.DraggedID == "" && h.hooks.DragEnded != nil {
			h.hooks.DragEnded()
		}

	case domain.ItemsReplacedEvent:
		if h.state.ShowDetail {
			if _, ok := h.coord.Item(h.state.DetailID); !ok {
				h.state.CloseDetail()
			}
		}
	}

	return nil
}
