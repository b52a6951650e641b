package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FoldSearchName menormalkan nama untuk kolom *_search_name:
// lower-case, aksen dibuang (NFD → strip combining marks),
// whitespace dirapikan jadi satu spasi.
func FoldSearchName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) { // combining marks
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
