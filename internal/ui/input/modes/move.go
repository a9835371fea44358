package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"collectionview/internal/ui/input/types"
	"collectionview/internal/ui/services/navigation"
)

// MoveMode is the keyboard rendition of a drag: entering grabs the item
// under the cursor, arrows pick the drop target, enter drops.
type MoveMode struct {
	keys types.KeyMap
}

func NewMoveMode(keys types.KeyMap) *MoveMode {
	return &MoveMode{keys: keys}
}

func (m *MoveMode) Name() string {
	return "move"
}

func (m *MoveMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.GrabAction{}}
}

func (m *MoveMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *MoveMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	toNormal := types.ChangeModeAction{Mode: types.ModeNormal}
	keys := m.keys

	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.CancelDragAction{}, types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Up):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionUp}}, true
	case key.Matches(msg, keys.Down):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionDown}}, true
	case key.Matches(msg, keys.Left):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionLeft}}, true
	case key.Matches(msg, keys.Right):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionRight}}, true
	case key.Matches(msg, keys.Home):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionHome}}, true
	case key.Matches(msg, keys.End):
		return []types.Action{types.MoveTargetAction{Direction: navigation.DirectionEnd}}, true
	case key.Matches(msg, keys.Activate), key.Matches(msg, keys.Grab):
		return []types.Action{types.DropAction{}, toNormal}, true
	case key.Matches(msg, keys.Cancel):
		return []types.Action{types.CancelDragAction{}, toNormal}, true
	}

	// everything else is swallowed while moving
	return nil, true
}
