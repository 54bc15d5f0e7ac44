// Package slug derives URL-safe identifiers from display names. Names may be
// Cyrillic (the marketplace's primary audience), so derivation transliterates
// to Latin before folding to the lowercase-hyphenated form. Uniqueness within
// an entity collection is handled separately (see repo.UniqueSlug) so every
// entity shares the same collision-suffixing loop.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// translit maps lowercase Cyrillic letters to their Latin transliteration.
// Hard and soft signs are dropped.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// stripMarks removes combining marks left over after NFD decomposition, so
// accented Latin letters fold to their base form (é → e).
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make derives a lowercase, hyphen-separated, ASCII slug from name.
// Runs of characters outside [a-z0-9] collapse into single hyphens and
// leading/trailing hyphens are trimmed. An empty or fully non-convertible
// name yields ""; callers are expected to treat that as a validation error.
func Make(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lowered {
		if lat, ok := translit[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}

	folded, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		folded = b.String()
	}

	var out strings.Builder
	prevHyphen := true // swallow leading separators
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				out.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(out.String(), "-")
}
