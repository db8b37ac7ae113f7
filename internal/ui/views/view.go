package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cropprices/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Screen state.Screen

	// Listing
	Visible       []string
	Cursor        int
	VisibleStart  int
	VisibleEnd    int
	Columns       int
	Query         string
	Filtering     bool
	FilterInput   string
	Suggestion    string
	FetchingID    string
	Notice        string
	CatalogLength int

	// Detail
	CropID        string
	Prices        *state.PricePair
	PresentFailed bool

	Splash      bool
	SpinnerView string
	HelpView    string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.Splash {
		return r.renderSplash(vs)
	}

	var body string
	switch vs.Screen {
	case state.ScreenDetail:
		body = r.RenderDetail(vs)
	default:
		body = r.RenderListing(vs)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")
	content.WriteString(body)
	if vs.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(vs.HelpView))
	}
	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("cropprices")
	if vs.Screen != state.ScreenListing || vs.Query == "" || vs.Filtering {
		return logo
	}

	filterText := r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", vs.Query))
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(filterText)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + filterText
}

func (r *Renderer) renderSplash(vs ViewState) string {
	msg := fmt.Sprintf("%s Loading crops", vs.SpinnerView)
	if vs.Width <= 0 || vs.Height <= 0 {
		return r.styles.Main.Render(msg)
	}
	return lipgloss.Place(vs.Width, vs.Height, lipgloss.Center, lipgloss.Center, msg)
}
