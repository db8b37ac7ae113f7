package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cropprices/internal/ui/input/types"
)

// FilterMode edits the search query; the grid narrows on every keystroke.
// Keys it does not consume are fed to the shared text input by the handler.
type FilterMode struct {
	query *textinput.Model
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{query: ti}
}

func (m *FilterMode) Name() string {
	return "filter"
}

// Enter resumes from the current query so the user can refine it
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	if m.query == nil {
		return nil
	}
	m.query.Prompt = "" // the listing draws its own "Search: " label
	m.query.SetValue(ctx.Query())
	m.query.CursorEnd()
	m.query.Focus()
	return nil
}

func (m *FilterMode) Exit(ctx types.Context) []types.Action {
	if m.query != nil {
		m.query.Blur()
	}
	return nil
}

func (m *FilterMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	// Arrows still move the grid cursor while typing
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyEsc:
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case tea.KeyEnter:
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: types.ModeFilter},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, false
}

func (m *FilterMode) value() string {
	if m.query == nil {
		return ""
	}
	return m.query.Value()
}
