package recipe

import (
	"slices"
	"strings"
	"unicode"
)

// 衍生標籤
const (
	TagQuick          = "quick"
	TagChickenBased   = "chicken-based"
	TagFishBased      = "fish-based"
	TagVegetableBased = "vegetable-based"
	TagVegetarian     = "vegetarian"
	TagHealthy        = "healthy"
	TagMeat           = "meat"
	TagDairy          = "dairy"
	TagGluten         = "gluten"
)

// 廚具
const (
	ApplianceStovetop  = "stovetop"
	ApplianceOven      = "oven"
	ApplianceMicrowave = "microwave"
	ApplianceBlender   = "blender"
	ApplianceGrill     = "grill"
)

// QuickPrepLimit 小於等於此分鐘數即標記 quick
const QuickPrepLimit = 20

// 關鍵字詞幹，捷克文與英文並列，全部小寫
var (
	chickenStems = []string{"kuřecí", "kuře", "chicken"}
	fishStems    = []string{"ryb", "losos", "tuňák", "treska", "pstruh", "makrel",
		"krevet", "mušl", "chobotnic", "kalamár", "krab", "humr",
		"fish", "salmon", "tuna", "cod", "trout", "mackerel",
		"shrimp", "prawn", "mussel", "squid", "calamari", "octopus", "crab", "lobster"}
	redMeatStems = []string{"maso", "masa", "vepřov", "hověz", "slanin", "šunk", "klobás", "krůt", "jehněčí",
		"meat", "beef", "pork", "bacon", "prosciutto", "sausage", "turkey", "lamb"}
	// 雞肉與魚類一律算肉類
	meatStems = concatStems(chickenStems, fishStems, redMeatStems)
	// 太短的英文字只比對整個單字（ham 不可命中 champignon）
	meatWords = []string{"ham", "hams"}

	vegetableStems = []string{"zelenin", "mrkev", "mrkv", "cibul", "špenát", "brokolic", "paprik",
		"rajč", "okurk", "salát", "celer", "brambor", "cuket", "lilek", "zelí",
		"vegetable", "carrot", "onion", "spinach", "broccoli", "bell pepper", "tomato",
		"cucumber", "lettuce", "celery", "potato", "zucchini", "eggplant", "cabbage"}
	dairyStems = []string{"sýr", "mlék", "mléč", "smetan", "jogurt", "máslo", "tvaroh",
		"cheese", "milk", "cream", "yogurt", "yoghurt", "butter", "mozzarell", "parmesan"}
	glutenStems = []string{"těstovin", "špaget", "mouk", "chléb", "chleba", "pečiv", "kuskus",
		"pšeni", "pasta", "spaghetti", "noodle", "flour", "bread", "couscous", "wheat", "tortill"}

	ovenStems      = []string{"trouba", "trouby", "troubě", "pečeme", "pečení", "oven", "bake", "roast"}
	microwaveStems = []string{"mikrovln", "microwave"}
	blenderStems   = []string{"mixér", "mixuj", "rozmixuj", "blend"}
	grillStems     = []string{"gril"}
)

// 食材分類規則，依序比對，第一個命中者勝出
var categoryRules = []struct {
	category Category
	stems    []string
	words    []string
}{
	{CategoryVegetable, vegetableStems, nil},
	{CategoryFruit, []string{"jabl", "hruš", "banán", "citron", "pomeranč", "jahod", "avokád", "hrozn",
		"apple", "pear", "banana", "lemon", "orange", "strawberr", "avocado", "grape"}, nil},
	{CategoryMeat, meatStems, meatWords},
	{CategoryDairy, dairyStems, nil},
	{CategoryEgg, []string{"vejce", "vajíč", "vajec", "egg"}, nil},
	{CategoryPasta, []string{"těstovin", "špaget", "pasta", "spaghetti", "noodle", "macaroni"}, nil},
	{CategoryRice, []string{"rýž", "rice", "risotto"}, nil},
	{CategoryLegume, []string{"fazol", "čočk", "hrách", "cizrn", "bean", "lentil", "chickpea", "peas"}, nil},
	{CategorySpice, []string{"sůl", "pepř", "koření", "oregano", "bazalk", "tymián", "rozmarýn", "skořic",
		"salt", "pepper", "basil", "thyme", "rosemary", "cinnamon", "spice"}, nil},
}

// LLM 可能回傳的分類名稱（英文或捷克文）
var categoryNames = map[string]Category{
	"vegetable": CategoryVegetable, "zelenina": CategoryVegetable,
	"fruit": CategoryFruit, "ovoce": CategoryFruit,
	"meat": CategoryMeat, "maso": CategoryMeat,
	"dairy": CategoryDairy, "mléčné": CategoryDairy, "mléčné výrobky": CategoryDairy,
	"egg": CategoryEgg, "eggs": CategoryEgg, "vejce": CategoryEgg,
	"pasta": CategoryPasta, "těstoviny": CategoryPasta,
	"rice": CategoryRice, "rýže": CategoryRice,
	"legume": CategoryLegume, "legumes": CategoryLegume, "luštěniny": CategoryLegume,
	"spice": CategorySpice, "spices": CategorySpice, "koření": CategorySpice,
	"other": CategoryOther, "ostatní": CategoryOther,
}

// ParseCategory 將分類名稱對應到固定詞彙，未知名稱歸為 other
func ParseCategory(label string) Category {
	if c, ok := categoryNames[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return CategoryOther
}

// CategorizeIngredient 依食材名稱的關鍵字推斷分類
func CategorizeIngredient(name string) Category {
	text := strings.ToLower(name)
	for _, rule := range categoryRules {
		if containsAny(text, rule.stems) || containsWord(text, rule.words) {
			return rule.category
		}
	}
	return CategoryOther
}

// Classify 依食材與步驟文字推導標籤與廚具，並在缺少烹飪建議時補上。
// 純函式：相同輸入必得相同輸出。
func Classify(r Recipe) Recipe {
	ingredients := ingredientText(r)
	instructions := strings.ToLower(strings.Join(r.Instructions, " "))

	r.Tags = deriveTags(r.PrepTime, ingredients)
	r.Appliances = deriveAppliances(instructions)
	if len(r.CookingTips) == 0 {
		r.CookingTips = deriveTips(r.PrepTime, ingredients)
	}
	return r
}

func deriveTags(prepTime int, ingredients string) []string {
	tags := []string{TagHealthy}
	if prepTime <= QuickPrepLimit {
		tags = append(tags, TagQuick)
	}
	if containsAny(ingredients, chickenStems) {
		tags = append(tags, TagChickenBased)
	}
	if containsAny(ingredients, fishStems) {
		tags = append(tags, TagFishBased)
	}
	if containsAny(ingredients, vegetableStems) {
		tags = append(tags, TagVegetableBased)
	}
	if hasMeat(ingredients) {
		tags = append(tags, TagMeat)
	} else {
		tags = append(tags, TagVegetarian)
	}
	if containsAny(ingredients, dairyStems) {
		tags = append(tags, TagDairy)
	}
	if containsAny(ingredients, glutenStems) {
		tags = append(tags, TagGluten)
	}
	return toSet(tags)
}

func deriveAppliances(instructions string) []string {
	appliances := []string{ApplianceStovetop}
	if containsAny(instructions, ovenStems) {
		appliances = append(appliances, ApplianceOven)
	}
	if containsAny(instructions, microwaveStems) {
		appliances = append(appliances, ApplianceMicrowave)
	}
	if containsAny(instructions, blenderStems) {
		appliances = append(appliances, ApplianceBlender)
	}
	if containsAny(instructions, grillStems) {
		appliances = append(appliances, ApplianceGrill)
	}
	return toSet(appliances)
}

func deriveTips(prepTime int, ingredients string) []string {
	tips := make([]string, 0, 3)
	if prepTime <= 10 {
		tips = append(tips, "Prepare all ingredients before you start cooking.")
	}
	if containsAny(ingredients, vegetableStems) {
		tips = append(tips, "Cook vegetables al dente to keep their vitamins.")
	}
	if hasMeat(ingredients) {
		tips = append(tips, "Let the meat rest before slicing.")
	}
	return tips
}

// ingredientText 食材名稱、份量與單位串接後轉小寫
func ingredientText(r Recipe) string {
	var b strings.Builder
	for _, ing := range r.Ingredients {
		b.WriteString(ing.Name)
		b.WriteByte(' ')
		b.WriteString(ing.Amount)
		b.WriteByte(' ')
		b.WriteString(ing.Unit)
		b.WriteByte(' ')
	}
	return strings.ToLower(b.String())
}

func containsAny(text string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(text, stem) {
			return true
		}
	}
	return false
}

func hasMeat(text string) bool {
	return containsAny(text, meatStems) || containsWord(text, meatWords)
}

// containsWord 以非字母切詞後逐字比對
func containsWord(text string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, field := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if slices.Contains(words, field) {
			return true
		}
	}
	return false
}

func concatStems(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
