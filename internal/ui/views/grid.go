package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cropprices/internal/catalog"
)

// RenderListing draws the search line, the crop grid and the status line
func (r *Renderer) RenderListing(vs ViewState) string {
	var b strings.Builder

	if vs.Filtering {
		b.WriteString(r.styles.FilterPrompt.Render("Search: "))
		b.WriteString(vs.FilterInput)
		b.WriteString("\n\n")
	}

	if len(vs.Visible) == 0 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("No crops match %q", vs.Query)))
		if vs.Suggestion != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Did you mean %s?", vs.Suggestion)))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(r.renderGrid(vs))
		b.WriteString("\n")
	}

	if status := r.renderStatus(vs); status != "" {
		b.WriteString(status)
	}

	return b.String()
}

func (r *Renderer) renderGrid(vs ViewState) string {
	columns := vs.Columns
	if columns < 1 {
		columns = 1
	}
	start, end := vs.VisibleStart, vs.VisibleEnd
	if end <= start || end > len(vs.Visible) {
		start, end = 0, len(vs.Visible)
	}

	var rows []string
	for rowStart := start; rowStart < end; rowStart += columns {
		rowEnd := rowStart + columns
		if rowEnd > end {
			rowEnd = end
		}
		tiles := make([]string, 0, columns)
		for i := rowStart; i < rowEnd; i++ {
			tiles = append(tiles, r.renderTile(vs.Visible[i], i == vs.Cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	var scroll []string
	if start > 0 {
		scroll = append(scroll, fmt.Sprintf("↑ %d more", start))
	}
	if end < len(vs.Visible) {
		scroll = append(scroll, fmt.Sprintf("↓ %d more", len(vs.Visible)-end))
	}
	if len(scroll) > 0 {
		grid += "\n" + r.styles.Scroll.Render(strings.Join(scroll, "  "))
	}
	return grid
}

func (r *Renderer) renderTile(id string, selected bool) string {
	label := catalog.Label(id)
	if lipgloss.Width(label) > TileWidth-4 {
		label = truncate(label, TileWidth-4)
	}
	content := catalog.Glyph(id) + "\n" + r.styles.TileLabel.Render(label)
	if selected {
		return r.styles.TileSelected.Render(content)
	}
	return r.styles.Tile.Render(content)
}

func (r *Renderer) renderStatus(vs ViewState) string {
	switch {
	case vs.FetchingID != "":
		return r.styles.Status.Render(fmt.Sprintf("%s Fetching prediction for %s… (esc to cancel)", vs.SpinnerView, catalog.Label(vs.FetchingID)))
	case vs.Notice != "":
		return r.styles.Notice.Render(vs.Notice)
	case vs.Query != "":
		return r.styles.Status.Render(fmt.Sprintf("%d of %d crops", len(vs.Visible), vs.CatalogLength))
	}
	return ""
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
