package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cropprices/internal/catalog"
	"cropprices/internal/config"
	"cropprices/internal/eventbus"
	"cropprices/internal/pricing"
	"cropprices/internal/ui/commands"
	"cropprices/internal/ui/input"
	inputtypes "cropprices/internal/ui/input/types"
	"cropprices/internal/ui/logic"
	"cropprices/internal/ui/state"
	"cropprices/internal/ui/views"
)

// Rows taken by everything except the grid: title, search line, status,
// help bar and the outer margin.
const chromeHeight = 8

// Model represents the UI state
type Model struct {
	config *config.Config
	state  state.State // current snapshot, replaced by every Reduce

	// UI-specific state not in State
	width   int
	height  int
	splash  bool
	help    help.Model
	spinner spinner.Model

	grid         *logic.Grid
	renderer     *views.Renderer
	inputHandler *input.Handler
	fetcher      *commands.Fetcher

	newToken func() string
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(cfg *config.Config, svc pricing.Service, bus eventbus.EventBus) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		config:       cfg,
		state:        state.New(catalog.New(cfg.Catalog.Crops)),
		splash:       cfg.UI.Splash > 0,
		help:         help.New(),
		spinner:      sp,
		grid:         logic.NewGrid(cfg.UI.Columns),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
		newToken:     uuid.NewString,
	}

	m.fetcher = commands.NewFetcher(svc, bus, pricing.Defaults{
		Rainfall:    cfg.Predict.Rainfall,
		Yields:      cfg.Predict.Yields,
		MonthOffset: cfg.Predict.MonthOffset,
	})
	m.grid.SetCount(len(m.state.Visible))

	return m
}

// SetTokenSource replaces the generator for selection tokens
func (m *Model) SetTokenSource(next func() string) {
	m.newToken = next
}

// State returns the current snapshot
func (m *Model) State() state.State {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.splash {
		cmds = append(cmds, tea.Tick(m.config.UI.Splash, func(time.Time) tea.Msg {
			return splashDoneMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case splashDoneMsg:
		m.splash = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.PredictionResultMsg:
		return m, m.apply(msg.Event())

	case commands.PresentResultMsg:
		return m, m.apply(msg.Event())

	case helpPagerMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("help pager failed")
		}
		return m, nil
	}

	// Cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.inputHandler.Keys()

	if m.splash {
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		return m, nil
	}

	ctx := m.context()
	actions, inputCmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{inputCmd}
	for _, action := range actions {
		cmds = append(cmds, m.handleAction(action, keys))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleAction(action inputtypes.Action, keys inputtypes.KeyMap) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if m.state.Screen == state.ScreenListing {
			m.grid.Move(a.Direction)
		}
	case inputtypes.SelectItemAction:
		return m.apply(state.ItemSelected{ID: a.ID, Token: m.newToken()})
	case inputtypes.GoBackAction:
		return m.apply(state.WentBack{})
	case inputtypes.UpdateTextAction:
		return m.apply(state.QueryChanged{Query: a.Text})
	case inputtypes.SubmitTextAction:
		return m.apply(state.QueryChanged{Query: a.Text})
	case inputtypes.CancelTextAction:
		return m.apply(state.QueryChanged{Query: ""})
	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewportHeight()
	case inputtypes.OpenHelpPagerAction:
		return showHelpPager(keys)
	case inputtypes.QuitAction:
		return m.quit()
	}
	return nil
}

// apply runs one event through the reducer, keeps the grid and input mode in
// step with the new snapshot and turns the effects into commands.
func (m *Model) apply(ev state.Event) tea.Cmd {
	prev := m.state
	next, effects := state.Reduce(prev, ev)
	m.state = next

	if next.Query != prev.Query {
		m.grid.Reset()
	}
	m.grid.SetCount(len(next.Visible))

	if next.Screen != prev.Screen {
		mode := inputtypes.ModeNormal
		if next.Screen == state.ScreenDetail {
			mode = inputtypes.ModeDetail
		}
		m.inputHandler.SetMode(mode, m.context())
		log.Debug().Str("screen", next.Screen.String()).Str("crop", next.SelectedID()).Msg("screen changed")
	}

	return m.fetcher.Run(effects)
}

func (m *Model) quit() tea.Cmd {
	m.fetcher.CancelAll()
	return tea.Quit
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{State: m.state, Cursor: m.grid.Cursor()}
}

func (m *Model) updateViewportHeight() {
	available := m.height - chromeHeight
	if m.help.ShowAll {
		available -= 3
	}
	m.grid.SetViewportHeight(available / views.TileHeight)
}

// View renders the UI
func (m *Model) View() string {
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	start, end := m.grid.VisibleRange()
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Screen:        m.state.Screen,
		Visible:       m.state.Visible,
		Cursor:        m.grid.Cursor(),
		VisibleStart:  start,
		VisibleEnd:    end,
		Columns:       m.grid.Columns(),
		Query:         m.state.Query,
		Notice:        m.state.Notice,
		CatalogLength: m.state.Catalog.Len(),
		CropID:        m.state.SelectedID(),
		Prices:        m.state.Prices,
		PresentFailed: m.state.PresentFailed,
		Splash:        m.splash,
		SpinnerView:   m.spinner.View(),
		HelpView:      m.help.View(m.inputHandler.Keys()),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.Filtering = true
		vs.FilterInput = ti.View()
	}
	if m.state.Pending != nil {
		vs.FetchingID = m.state.Pending.CropID
	}
	if len(m.state.Visible) == 0 && m.state.Query != "" {
		if s, ok := catalog.Suggest(m.state.Catalog.IDs(), m.state.Query); ok {
			vs.Suggestion = s
		}
	}
	return vs
}
