package phonetic

// brandAliases maps colloquial brand spellings, mostly Russian, to canonical
// tokens. Applied per token after cleaning and before phonetic encoding.
var brandAliases = map[string]string{
	"мерс":         "мерседес",
	"мерседес":     "мерседес",
	"беха":         "bmw",
	"бмв":          "bmw",
	"бэха":         "bmw",
	"тойота":       "toyota",
	"хендай":       "hyundai",
	"хундай":       "hyundai",
	"hyundai":      "hyundai",
	"hundai":       "hyundai",
	"киа":          "kia",
	"kia":          "kia",
	"ниссан":       "nissan",
	"nissan":       "nissan",
	"honda":        "honda",
	"хонда":        "honda",
	"mitsubishi":   "mitsubishi",
	"митсубиси":    "mitsubishi",
	"митсубиши":    "mitsubishi",
	"mazda":        "mazda",
	"мазда":        "mazda",
	"ford":         "ford",
	"форд":         "ford",
	"chevrolet":    "chevrolet",
	"chevy":        "chevrolet",
	"шевроле":      "chevrolet",
	"renault":      "renault",
	"рено":         "renault",
	"ренош":        "renault",
	"volkswagen":   "volkswagen",
	"vw":           "volkswagen",
	"фольксваген":  "volkswagen",
	"фольцваген":   "volkswagen",
	"audi":         "audi",
	"ауди":         "audi",
	"subaru":       "subaru",
	"субару":       "subaru",
	"suzuki":       "suzuki",
	"сузуки":       "suzuki",
	"lexus":        "lexus",
	"лексус":       "lexus",
	"infiniti":     "infiniti",
	"инфинити":     "infiniti",
	"acura":        "acura",
	"акура":        "acura",
	"peugeot":      "peugeot",
	"pegeot":       "peugeot",
	"пежо":         "peugeot",
	"citroen":      "citroen",
	"ситроен":      "citroen",
	"opel":         "opel",
	"опель":        "opel",
	"skoda":        "skoda",
	"шкода":        "skoda",
	"seat":         "seat",
	"сеат":         "seat",
	"volvo":        "volvo",
	"вольво":       "volvo",
	"landrover":    "land rover",
	"лендровер":    "land rover",
	"ландровер":    "land rover",
	"jaguar":       "jaguar",
	"ягуар":        "jaguar",
	"jeep":         "jeep",
	"джип":         "jeep",
	"dodge":        "dodge",
	"додж":         "dodge",
	"chrysler":     "chrysler",
	"крейслер":     "chrysler",
	"fiat":         "fiat",
	"фиат":         "fiat",
	"альфаромео":   "alfa romeo",
	"iveco":        "iveco",
	"ивуко":        "iveco",
	"man":          "man",
	"ман":          "man",
	"scania":       "scania",
	"скания":       "scania",
	"daf":          "daf",
	"даф":          "daf",
	"uaz":          "uaz",
	"уаз":          "uaz",
	"lada":         "lada",
	"ваз":          "lada",
	"vaz":          "lada",
	"газ":          "gaz",
	"gaz":          "gaz",
	"газель":       "gaz",
	"газон":        "gaz",
	"kamaz":        "kamaz",
	"камаз":        "kamaz",
	"komatsu":      "komatsu",
	"comatsu":      "komatsu",
	"коматсу":      "komatsu",
	"hitachi":      "hitachi",
	"хитачи":       "hitachi",
	"doosan":       "doosan",
	"доосан":       "doosan",
	"дусан":        "doosan",
	"isuzu":        "isuzu",
	"исузу":        "isuzu",
	"hino":         "hino",
	"хино":         "hino",
	"foton":        "foton",
	"фотон":        "foton",
	"daewoo":       "daewoo",
	"даеву":        "daewoo",
	"дэу":          "daewoo",
	"greatwall":    "great wall",
	"гретволл":     "great wall",
	"haval":        "haval",
	"хафей":        "haval",
	"хавал":        "haval",
	"geely":        "geely",
	"джили":        "geely",
	"chery":        "chery",
	"черри":        "chery",
	"чери":         "chery",
	"lifan":        "lifan",
	"ливан":        "lifan",
	"jac":          "jac",
	"джак":         "jac",
	"dongfeng":     "dongfeng",
	"донгфенг":     "dongfeng",
	"shantui":      "shantui",
	"шантуй":       "shantui",
	"котерепилор":  "caterpillar",
	"котерпилор":   "caterpillar",
	"котерпиллар":  "caterpillar",
	"котерьпилор":  "caterpillar",
	"катерпилер":   "caterpillar",
	"катерпиллар":  "caterpillar",
}
