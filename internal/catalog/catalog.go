// Package catalog holds the fixed list of crops the UI offers and the
// lookups derived from it.
package catalog

import "strings"

// Asset is the artwork associated with a crop
type Asset struct {
	Image string // file name of the crop photo
	Glyph string // short symbol drawn on grid tiles
}

// Crop ids are sent to the prediction service verbatim, spelling included.
var defaultCrops = []string{
	"carrot",
	"tomato",
	"cucuber",
	"rice",
	"onion",
	"green_chili",
	"lemon",
	"brinjal",
	"drums",
	"cabage",
	"banana",
	"tobaco",
	"spainch",
	"redchile",
	"pumkin",
	"potato",
	"mango",
	"ladies_fin",
	"ground_nut",
}

var assets = map[string]Asset{
	"carrot":      {Image: "carrot.jpeg", Glyph: "🥕"},
	"tomato":      {Image: "tomato.jpeg", Glyph: "🍅"},
	"cucuber":     {Image: "cucumber.jpeg", Glyph: "🥒"},
	"rice":        {Image: "wheat.jpeg", Glyph: "🌾"},
	"onion":       {Image: "oni.jpeg", Glyph: "🧅"},
	"green_chili": {Image: "greenchile.jpeg", Glyph: "🌶"},
	"lemon":       {Image: "th.jpeg", Glyph: "🍋"},
	"brinjal":     {Image: "ginger.jpeg", Glyph: "🍆"},
	"drums":       {Image: "drums.jpeg", Glyph: "🥢"},
	"cabage":      {Image: "cabage.jpeg", Glyph: "🥬"},
	"banana":      {Image: "banana.jpeg", Glyph: "🍌"},
	"tobaco":      {Image: "tobaco.jpeg", Glyph: "🍂"},
	"spainch":     {Image: "spainch.jpeg", Glyph: "🥬"},
	"redchile":    {Image: "redchil.jpeg", Glyph: "🌶"},
	"pumkin":      {Image: "pumkin.jpeg", Glyph: "🎃"},
	"potato":      {Image: "potato.jpeg", Glyph: "🥔"},
	"mango":       {Image: "mango.jpeg", Glyph: "🥭"},
	"ladies_fin":  {Image: "ladies.jpeg", Glyph: "🌿"},
	"ground_nut":  {Image: "groundnuts.jpeg", Glyph: "🥜"},
}

// fallbackGlyph is drawn for crops configured without a known asset
const fallbackGlyph = "🌱"

// Catalog is an immutable ordered list of crop ids
type Catalog struct {
	ids []string
}

// Default returns the built-in catalog
func Default() Catalog {
	return New(defaultCrops)
}

// New builds a catalog from ids, dropping blanks and later duplicates.
// An input with no usable ids yields the default catalog.
func New(ids []string) Catalog {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return Default()
	}
	return Catalog{ids: out}
}

// IDs returns a copy of the crop ids in catalog order
func (c Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len returns the number of crops
func (c Catalog) Len() int {
	return len(c.ids)
}

// Contains reports whether id is part of the catalog
func (c Catalog) Contains(id string) bool {
	for _, v := range c.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Filter narrows the catalog by query, see Filter
func (c Catalog) Filter(query string) []string {
	return Filter(c.ids, query)
}

// LookupAsset returns the artwork for a crop id
func LookupAsset(id string) (Asset, bool) {
	a, ok := assets[id]
	return a, ok
}

// Glyph returns the tile symbol for a crop, falling back to a generic one
func Glyph(id string) string {
	if a, ok := assets[id]; ok {
		return a.Glyph
	}
	return fallbackGlyph
}

// Label returns the display name of a crop id
func Label(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
