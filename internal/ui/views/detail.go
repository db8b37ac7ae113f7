package views

import (
	"fmt"
	"strconv"
	"strings"

	"cropprices/internal/catalog"
	"cropprices/internal/ui/state"
)

// RenderDetail draws the price comparison for the selected crop
func (r *Renderer) RenderDetail(vs ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.CropName.Render(fmt.Sprintf("%s details", catalog.Label(vs.CropID))))
	b.WriteString("  ")
	b.WriteString(catalog.Glyph(vs.CropID))
	b.WriteString("\n")

	b.WriteString(r.styles.Heading.Render("Present Price:"))
	b.WriteString("\n")
	b.WriteString(r.renderPresent(vs))
	b.WriteString("\n")

	b.WriteString(r.styles.Heading.Render("Predicted Price:"))
	b.WriteString("\n")
	if vs.Prices != nil {
		b.WriteString(r.styles.Price.Render(FormatPredicted(vs.Prices.Predicted)))
		if arrow := r.renderTrend(*vs.Prices); arrow != "" {
			b.WriteString(" ")
			b.WriteString(arrow)
		}
	}
	b.WriteString("\n")

	b.WriteString(r.styles.BackButton.Render("Go Back (esc)"))
	return b.String()
}

func (r *Renderer) renderPresent(vs ViewState) string {
	switch {
	case vs.Prices != nil && vs.Prices.Present != nil:
		return r.styles.Price.Render(FormatPresent(*vs.Prices.Present))
	case vs.PresentFailed:
		return r.styles.Unavailable.Render("unavailable")
	default:
		return r.styles.Pending.Render(fmt.Sprintf("%s fetching…", vs.SpinnerView))
	}
}

func (r *Renderer) renderTrend(p state.PricePair) string {
	trend, ok := p.Trend()
	if !ok {
		return ""
	}
	if trend == state.TrendDown {
		return r.styles.TrendDown.Render(TrendArrow(trend))
	}
	return r.styles.TrendUp.Render(TrendArrow(trend))
}

// TrendArrow returns the glyph for a trend
func TrendArrow(t state.TrendDirection) string {
	if t == state.TrendDown {
		return "▼"
	}
	return "▲"
}

// FormatPredicted renders the predicted price with two decimals
func FormatPredicted(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPresent renders the present price as the service reported it
func FormatPresent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
