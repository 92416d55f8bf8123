package story

import (
	"strings"
	"unicode/utf8"
)

const DefaultColor = "#666666"

var knownInitials = map[string]string{
	"NY Times":     "NYT",
	"The Guardian": "TG",
	"AP News":      "AP",
}

// Initials derives the short badge label shown next to a story's source.
func Initials(name string) string {
	if initials, ok := knownInitials[name]; ok {
		return initials
	}

	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return ""
	case 1:
		word := words[0]
		if utf8.RuneCountInString(word) > 3 {
			word = string([]rune(word)[:3])
		}
		return strings.ToUpper(word)
	}

	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

func (o Outlet) Initials() string {
	return Initials(o.Name)
}

// OutletIndex maps outlet names to outlets for color lookups.
type OutletIndex map[string]Outlet

func IndexOutlets(outlets []Outlet) OutletIndex {
	idx := make(OutletIndex, len(outlets))
	for _, o := range outlets {
		idx[o.Name] = o
	}
	return idx
}

func (idx OutletIndex) Color(source string) string {
	if o, ok := idx[source]; ok && o.Color != "" {
		return o.Color
	}
	return DefaultColor
}
