package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"collectionview/internal/ui/input/types"
	"collectionview/internal/ui/services/navigation"
)

type NormalMode struct {
	keys        types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func navigate(d navigation.Direction) []types.Action {
	return []types.Action{types.NavigateAction{Direction: d}}
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// gg goes to the top; any other key cancels the prefix
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return navigate(navigation.DirectionHome), true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	keys := m.keys
	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, keys.Up):
		return navigate(navigation.DirectionUp), true
	case key.Matches(msg, keys.Down):
		return navigate(navigation.DirectionDown), true
	case key.Matches(msg, keys.Left):
		return navigate(navigation.DirectionLeft), true
	case key.Matches(msg, keys.Right):
		return navigate(navigation.DirectionRight), true
	case key.Matches(msg, keys.PageUp):
		return navigate(navigation.DirectionPageUp), true
	case key.Matches(msg, keys.PageDown):
		return navigate(navigation.DirectionPageDown), true
	case key.Matches(msg, keys.Home):
		return navigate(navigation.DirectionHome), true
	case key.Matches(msg, keys.End):
		return navigate(navigation.DirectionEnd), true

	case key.Matches(msg, keys.Select):
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.ToggleSelectAction{}}, true
	case key.Matches(msg, keys.SelectAll):
		return []types.Action{types.ToggleSelectAllAction{}}, true
	case key.Matches(msg, keys.Activate):
		if ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.ActivateAction{}}, true

	case key.Matches(msg, keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case key.Matches(msg, keys.Filter):
		return []types.Action{types.CycleFilterAction{}}, true
	case key.Matches(msg, keys.Sort):
		return []types.Action{types.CycleSortAction{}}, true
	case key.Matches(msg, keys.SortDir):
		return []types.Action{types.FlipSortAction{}}, true
	case key.Matches(msg, keys.ViewMode):
		return []types.Action{types.CycleViewModeAction{}}, true

	case key.Matches(msg, keys.Grab):
		if !ctx.CanReorder() || ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeMove}}, true

	case key.Matches(msg, keys.Cancel):
		// esc peels one layer: selection first, then the whole query
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		if ctx.QueryActive() {
			return []types.Action{types.ClearQueryAction{}}, true
		}
		return nil, true

	case key.Matches(msg, keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
