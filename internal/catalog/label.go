package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is how an item is shown on a grid card: "mr-mime" -> "mr mime".
func Label(item string) string {
	return strings.ReplaceAll(item, "-", " ")
}

// ChampionLabel is the louder form used for the chosen champion.
func ChampionLabel(item string) string {
	// Casers keep state, so each call gets its own.
	return cases.Upper(language.Und).String(Label(item))
}
