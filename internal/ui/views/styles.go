package views

import (
	"github.com/charmbracelet/lipgloss"
)

// TileWidth and TileHeight are the outer size of one grid tile, border included
const (
	TileWidth  = 16
	TileHeight = 4
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Filter       lipgloss.Style
	FilterPrompt lipgloss.Style
	Notice       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Tile         lipgloss.Style
	TileSelected lipgloss.Style
	TileLabel    lipgloss.Style
	Heading      lipgloss.Style
	CropName     lipgloss.Style
	Price        lipgloss.Style
	TrendUp      lipgloss.Style
	TrendDown    lipgloss.Style
	Pending      lipgloss.Style
	Unavailable  lipgloss.Style
	BackButton   lipgloss.Style
	Scroll       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		FilterPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Notice:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Width(TileWidth - 2).
			Align(lipgloss.Center),
		TileSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Width(TileWidth - 2).
			Align(lipgloss.Center).
			Bold(true),
		TileLabel: lipgloss.NewStyle().Bold(true),
		Heading: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1),
		CropName: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Price:       lipgloss.NewStyle().Bold(true).PaddingLeft(2),
		TrendUp:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),  // green
		TrendDown:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")), // red
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2),
		Unavailable: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).PaddingLeft(2),
		BackButton: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2).
			MarginTop(1),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
