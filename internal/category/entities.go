package category

import "strings"

// Category is a catalog section. Categories form a tree through ParentSlug;
// a nil parent marks a root.
type Category struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	ParentSlug *string    `json:"parent,omitempty"`
	Children   []Category `json:"children,omitempty"`
}

// translit maps Cyrillic letters to their Latin spellings for slugs.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ы': "i", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify derives a URL slug from a category name. Cyrillic characters are
// transliterated, everything outside [a-z0-9] becomes a hyphen, and runs of
// hyphens collapse.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if mapped, ok := translit[r]; ok {
			b.WriteString(mapped)
			continue
		}
		b.WriteRune(r)
	}

	var out []rune
	lastHyphen := true // suppress a leading hyphen
	for _, r := range b.String() {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			lastHyphen = false
		default:
			if !lastHyphen {
				out = append(out, '-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(string(out), "-")
}
