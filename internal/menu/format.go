package menu

import (
	"fmt"
	"strings"
)

// Mode selects which locale titles appear in the rendered menu.
type Mode int

const (
	Bilingual Mode = iota
	EnglishOnly
	FinnishOnly
)

// NoMenuText is the user-facing fallback for an empty menu and for every
// fetch failure surfaced to a chat.
const NoMenuText = "No menu available today. Sorry!"

// Format renders a menu as a Markdown message. It is pure: identical
// input yields byte-identical output. An empty menu renders NoMenuText
// regardless of mode.
func Format(m Menu, mode Mode) string {
	var b strings.Builder
	for _, c := range m {
		switch mode {
		case EnglishOnly:
			writeCourse(&b, c, c.TitleEn)
		case FinnishOnly:
			writeCourse(&b, c, c.TitleFi)
		default:
			if c.Category == CategoryDessert {
				fmt.Fprintf(&b, "\n*Dessert:* %s.\n%s. %s\n", c.TitleFi, c.TitleEn, c.Properties)
			} else {
				fmt.Fprintf(&b, "\n%s.\n%s. %s\n", c.TitleFi, c.TitleEn, c.Properties)
			}
		}
	}
	if b.Len() == 0 {
		return NoMenuText
	}
	return b.String()
}

func writeCourse(b *strings.Builder, c Course, title string) {
	if c.Category == CategoryDessert {
		fmt.Fprintf(b, "\n*Dessert:* %s. %s\n", title, c.Properties)
	} else {
		fmt.Fprintf(b, "\n%s. %s\n", title, c.Properties)
	}
}
