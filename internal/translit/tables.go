package translit

import "fmt"

// preOverridePairs maps hand-curated Cyrillic misspellings of major brand
// names straight to their canonical Latin token. Checked before
// transliteration so script-specific typos are caught verbatim.
var preOverridePairs = [][2]string{
	{"тойота", "toyota"},
	{"тайота", "toyota"},
	{"тоёта", "toyota"},
	{"таёта", "toyota"},
	{"тойёта", "toyota"},
	{"тойета", "toyota"},
	{"тойтоа", "toyota"},
	{"таиота", "toyota"},
	{"таета", "toyota"},
	{"лексус", "lexus"},
	{"лэксус", "lexus"},
	{"лехсус", "lexus"},
	{"лехус", "lexus"},
	{"лекс", "lexus"},
	{"лукойл", "lukoil"},
	{"лукоил", "lukoil"},
	{"лукоел", "lukoil"},
}

// postOverridePairs catches misspellings that only become visible after
// transliteration (garbled Latin renderings).
var postOverridePairs = [][2]string{
	{"toiota", "toyota"},
	{"toeta", "toyota"},
	{"tayota", "toyota"},
	{"toyeta", "toyota"},
	{"toyata", "toyota"},
	{"toitoa", "toyota"},
	{"taiota", "toyota"},
	{"lexsus", "lexus"},
	{"leksus", "lexus"},
	{"lecsus", "lexus"},
	{"leksis", "lexus"},
	{"lukoyl", "lukoil"},
}

var (
	preOverrides  = mustTable("pre-transliteration", preOverridePairs)
	postOverrides = mustTable("post-transliteration", postOverridePairs)
)

// mustTable builds an immutable lookup map, rejecting duplicate keys at
// startup instead of letting one entry silently shadow another.
func mustTable(name string, pairs [][2]string) map[string]string {
	table := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, dup := table[p[0]]; dup {
			panic(fmt.Sprintf("translit: duplicate key %q in %s override table", p[0], name))
		}
		table[p[0]] = p[1]
	}
	return table
}

// ruToLatin is the per-character Cyrillic to Latin mapping. Some letters
// expand into two or three Latin characters.
var ruToLatin = map[rune]string{
	'а': "a",
	'б': "b",
	'в': "v",
	'г': "g",
	'д': "d",
	'е': "e",
	'ё': "e",
	'ж': "zh",
	'з': "z",
	'и': "i",
	'й': "i",
	'к': "k",
	'л': "l",
	'м': "m",
	'н': "n",
	'о': "o",
	'п': "p",
	'р': "r",
	'с': "s",
	'т': "t",
	'у': "u",
	'ф': "f",
	'х': "h",
	'ц': "ts",
	'ч': "ch",
	'ш': "sh",
	'щ': "sch",
	'ъ': "",
	'ы': "y",
	'ь': "",
	'э': "e",
	'ю': "yu",
	'я': "ya",
}

// latinToRu is scanned in order with greedy longest-prefix matching, so the
// tri-/digraphs must precede the single letters.
var latinToRu = []struct {
	seq string
	ru  rune
}{
	{"sch", 'щ'},
	{"sh", 'ш'},
	{"ch", 'ч'},
	{"zh", 'ж'},
	{"ts", 'ц'},
	{"yu", 'ю'},
	{"ya", 'я'},
	{"a", 'а'},
	{"b", 'б'},
	{"v", 'в'},
	{"g", 'г'},
	{"d", 'д'},
	{"e", 'е'},
	{"z", 'з'},
	{"i", 'и'},
	{"k", 'к'},
	{"l", 'л'},
	{"m", 'м'},
	{"n", 'н'},
	{"o", 'о'},
	{"p", 'п'},
	{"r", 'р'},
	{"s", 'с'},
	{"t", 'т'},
	{"u", 'у'},
	{"f", 'ф'},
	{"h", 'х'},
	{"y", 'ы'},
}

// punctuation stripped to spaces during token normalization. Hyphens and
// underscores are only trimmed at token edges, they may be meaningful inside.
const strippedPunctuation = "\"'`~!@#$%^&*+=[]{}:;,.?<>№"
