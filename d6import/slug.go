package d6import

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugMinLen = 3
	slugMaxLen = 64
	// truncation leaves room for the uniqueness suffix added later
	slugTruncateLen = 61
)

// normalizeSlug enforces the target system's slug length bounds. Slugs that
// are too short get a transliterated title instead, or an "id-" prefix when
// even the title yields nothing usable; overlong slugs are truncated.
func normalizeSlug(slug, title string) string {
	if utf8.RuneCountInString(slug) < slugMinLen {
		if t := Transliterate(title); utf8.RuneCountInString(t) >= slugMinLen {
			return truncateSlug(t)
		}
		return "id-" + slug
	}
	return truncateSlug(slug)
}

func truncateSlug(slug string) string {
	if utf8.RuneCountInString(slug) <= slugMaxLen {
		return slug
	}
	return string([]rune(slug)[:slugTruncateLen])
}

// asciiFold decomposes characters and drops combining marks, so "é" becomes
// "e" before the rune filter below.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// cyrillicLatin covers the Russian alphabet; D6 node titles in this import
// are mostly Russian.
var cyrillicLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate renders a title as an ASCII lowercase slug: diacritics are
// stripped, Cyrillic is romanized, anything else collapses runs into single
// hyphens.
func Transliterate(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if latin, ok := cyrillicLatin[r]; ok {
			if latin == "" {
				continue
			}
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteString(latin)
			continue
		}

		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
