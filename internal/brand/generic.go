package brand

import "github.com/partsearch/parts-search/internal/translit"

// genericLabelWords are words that never identify a brand on their own:
// corporate suffixes, part nouns in Russian and English, and place names
// that show up inside manufacturer labels.
var genericLabelWords = []string{
	"group", "company", "co", "inc", "corp", "corporation", "limited", "ltd",
	"llc", "plc", "pte", "pty", "gmbh", "srl", "sro", "spa", "sa", "sas",
	"sasu", "ab", "ag", "oy", "oyj", "nv", "bv", "ptc", "holding", "holdings",
	"motor", "motors", "moto", "auto", "automobile", "automobiles",
	"automotive", "factory", "industries", "industry", "parts", "detail",
	"details", "service", "services", "equipment", "machines", "machinery",
	"construction", "products", "product", "systems", "system", "brand",
	"electronics", "electronic", "electric", "electrical", "oil", "lubricant",
	"lubricants", "fluid", "fluids", "liquid", "grease", "filter", "filters",
	"bearing", "bearings", "seal", "seals", "gasket", "gaskets", "ring",
	"rings", "belt", "belts", "hose", "hoses", "pipe", "pipes", "tube",
	"tubes", "pump", "pumps", "valve", "valves", "cylinder", "cylinders",
	"liner", "liners", "piston", "pistons", "bolt", "bolts", "nut", "nuts",
	"washer", "washers", "stud", "studs", "pin", "pins", "rod", "rods",
	"spring", "springs", "gear", "gears", "gidroprivod",
	"завод", "компания", "ооо", "zao", "зао", "ooo", "группа",
	"детали", "деталь", "запчасти", "масло", "масла", "маслосъемный",
	"маслосъемная", "масл", "жидкость", "жидкости", "подшипник",
	"подшипники", "podshipnik", "kronshtein", "koromyslo", "gidro", "nasos",
	"колпачок", "колодка", "колодки", "прокладка", "прокладки", "втулка",
	"втулки", "болт", "болты", "гайка", "гайки", "шайба", "шайбы", "шланг",
	"шланги", "насос", "насосы", "трубка", "трубки", "кольцо", "кольца",
	"ремень", "ремни", "уплотнение", "уплотнения", "уплотнитель",
	"уплотнители", "уплотнительная", "уплотнительные", "уплотнительный",
	"фильтр", "фильтры", "сальник", "сальники", "клапан", "клапаны",
	"гидроцилиндр", "цилиндр", "цилиндры", "гидромотор", "поршень",
	"поршни", "шестерня", "шестерни", "корпус", "кронштейн", "рычаг",
	"рычаги", "пружина", "запчасть", "кардан", "фара", "лампа", "лампы",
	"поддон", "насадка", "насадки", "крышка", "крышки", "кожух", "комплект",
	"комплекты", "опора", "опоры", "распылитель", "распылители", "шкворень",
	"сайлентблок", "сайлентблоки", "колесо", "колеса",
	"quanzhou", "shanghai", "moscow", "moskva", "saint", "petersburg",
	"china", "germany", "italy", "japan", "korea", "turkey", "russia",
}

// genericSuffixes cover transliterated Russian case endings plus English
// plurals, tried longest first within the stripping loop.
var genericSuffixes = []string{
	"ami", "yami", "kami", "yah", "akh", "ogo", "ego", "omu", "emu", "yakh",
	"ov", "ev", "iy", "yy", "iyu", "uyu", "aya", "oy", "ey", "im", "ym",
	"om", "em", "am", "yam", "iu", "ya", "ia", "a", "y", "i", "u", "e",
	"s", "es",
}

// noiseStarters mark manufacturer file lines that are really product
// descriptions. Matched against the raw lowercased first token of a line.
var noiseStarters = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"замок", "прокладка", "прокладки", "палец", "пальц", "шланг",
		"шланги", "втулка", "втулки", "масло", "масла", "масел",
		"маслосъемный", "жидкость", "жидкости", "подшипник", "подшипники",
		"колпачок", "кольцо", "кольца", "насос", "насосы", "н/р", "для",
		"пружина", "пружины", "поршень", "поршни", "ремень", "ремни",
		"кронштейн", "крышка", "болт", "гайка", "шайба", "фильтр",
		"фильтры", "уплотнение", "уплотнения", "уплотнитель",
		"уплотнители", "опора", "опоры", "гидроцилиндр", "гидромотор",
		"деталь", "детали", "комплект", "комплекты",
	} {
		noiseStarters[w] = struct{}{}
	}
}

var (
	genericTokens = map[string]struct{}{}
	genericBases  = map[string]struct{}{}
)

func init() {
	for _, word := range genericLabelWords {
		normalized := translit.NormalizeToken(word)
		if normalized == "" {
			continue
		}
		genericTokens[normalized] = struct{}{}
		if base := stripGenericSuffix(normalized); base != "" {
			genericTokens[base] = struct{}{}
		}
	}
	for token := range genericTokens {
		if base := stripGenericSuffix(token); base != "" {
			genericBases[base] = struct{}{}
		}
	}
}

// IsGenericLike reports whether a normalized token is a generic word, either
// directly or once its inflection suffixes are stripped.
func IsGenericLike(token string) bool {
	if token == "" {
		return true
	}
	if _, ok := genericTokens[token]; ok {
		return true
	}
	_, ok := genericBases[stripGenericSuffix(token)]
	return ok
}

// stripGenericSuffix repeatedly removes inflection suffixes while the
// remainder stays at least four characters long.
func stripGenericSuffix(token string) string {
	base := token
	for changed := true; changed; {
		changed = false
		for _, suffix := range genericSuffixes {
			if len(base)-len(suffix) >= 4 && base[len(base)-len(suffix):] == suffix {
				base = base[:len(base)-len(suffix)]
				changed = true
				break
			}
		}
	}
	return base
}
