package logic

// Grid handles cursor movement and scrolling over a row-major grid of tiles
type Grid struct {
	columns        int
	cursor         int
	count          int
	viewportOffset int // first visible row
	viewportHeight int // visible rows
}

// NewGrid creates a grid with the given number of columns
func NewGrid(columns int) *Grid {
	if columns < 1 {
		columns = 1
	}
	return &Grid{columns: columns, viewportHeight: 1}
}

// Columns returns the number of tiles per row
func (g *Grid) Columns() int {
	return g.columns
}

// Cursor returns the index of the highlighted tile
func (g *Grid) Cursor() int {
	return g.cursor
}

// ViewportOffset returns the first visible row
func (g *Grid) ViewportOffset() int {
	return g.viewportOffset
}

// Rows returns the number of rows needed for the current item count
func (g *Grid) Rows() int {
	return (g.count + g.columns - 1) / g.columns
}

// SetCount updates the number of tiles, clamping the cursor. Called whenever
// the filtered set changes.
func (g *Grid) SetCount(count int) {
	g.count = count
	g.clamp()
	g.ensureCursorVisible()
}

// SetViewportHeight sets how many rows fit on screen
func (g *Grid) SetViewportHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	g.viewportHeight = rows
	g.ensureCursorVisible()
}

// Reset moves the cursor to the first tile
func (g *Grid) Reset() {
	g.cursor = 0
	g.viewportOffset = 0
}

// Move moves the cursor in a direction. Left and right wrap across rows;
// up and down stay in the same column.
func (g *Grid) Move(direction string) {
	if g.count == 0 {
		return
	}
	switch direction {
	case "up":
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case "down":
		if g.cursor+g.columns < g.count {
			g.cursor += g.columns
		} else if g.cursor/g.columns < g.Rows()-1 {
			// Partial last row: land on its last tile
			g.cursor = g.count - 1
		}
	case "left":
		if g.cursor > 0 {
			g.cursor--
		}
	case "right":
		if g.cursor < g.count-1 {
			g.cursor++
		}
	case "home":
		g.cursor = 0
	case "end":
		g.cursor = g.count - 1
	}
	g.ensureCursorVisible()
}

// VisibleRange returns the half-open range of tile indexes currently on screen
func (g *Grid) VisibleRange() (int, int) {
	start := g.viewportOffset * g.columns
	end := start + g.viewportHeight*g.columns
	if end > g.count {
		end = g.count
	}
	if start > end {
		start = end
	}
	return start, end
}

func (g *Grid) clamp() {
	if g.cursor >= g.count {
		g.cursor = g.count - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

func (g *Grid) ensureCursorVisible() {
	row := g.cursor / g.columns
	if row < g.viewportOffset {
		g.viewportOffset = row
	}
	if row >= g.viewportOffset+g.viewportHeight {
		g.viewportOffset = row - g.viewportHeight + 1
	}
	maxOffset := g.Rows() - g.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if g.viewportOffset > maxOffset {
		g.viewportOffset = maxOffset
	}
}
