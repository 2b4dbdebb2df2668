package domain

// iconGlyphs maps semantic icon names to the identifiers clients resolve
// against their icon font. Pure lookup, configured once.
var iconGlyphs = map[string]string{
	"home":      "ion-home",
	"search":    "ion-search",
	"tools":     "ion-construct",
	"messages":  "ion-chatbubbles",
	"profile":   "ion-person",
	"account":   "ion-person-circle",
	"bell":      "ion-notifications",
	"payments":  "ion-card",
	"logout":    "ion-log-out",
	"login":     "ion-log-in",
	"portfolio": "ion-briefcase",
	"products":  "ion-cube",
	"enquiries": "ion-mail-open",
	"dashboard": "ion-grid",
	"offers":    "ion-pricetag",
	"gallery":   "ion-images",
	"loyalty":   "ion-star",
	"reports":   "ion-bar-chart",
}

const fallbackGlyph = "ion-ellipse"

// IconGlyph resolves a semantic icon name. Unknown names resolve to a
// neutral fallback glyph rather than failing.
func IconGlyph(name string) string {
	if g, ok := iconGlyphs[name]; ok {
		return g
	}
	return fallbackGlyph
}
