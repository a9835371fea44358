package types

import "collectionview/internal/ui/services/navigation"

// Navigation actions
type NavigateAction struct {
	Direction navigation.Direction
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type ToggleSelectAllAction struct{}

func (a ToggleSelectAllAction) Type() string { return "toggle_select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Query actions
type CycleFilterAction struct{}

func (a CycleFilterAction) Type() string { return "cycle_filter" }

type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type FlipSortAction struct{}

func (a FlipSortAction) Type() string { return "flip_sort" }

type CycleViewModeAction struct{}

func (a CycleViewModeAction) Type() string { return "cycle_view_mode" }

// Reorder actions
type GrabAction struct{}

func (a GrabAction) Type() string { return "grab" }

type MoveTargetAction struct {
	Direction navigation.Direction
}

func (a MoveTargetAction) Type() string { return "move_target" }

type DropAction struct{}

func (a DropAction) Type() string { return "drop" }

type CancelDragAction struct{}

func (a CancelDragAction) Type() string { return "cancel_drag" }

// Item actions
type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
