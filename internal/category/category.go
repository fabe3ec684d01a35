package category

import "strings"

// Category is the closed set of drink categories a deal can belong to.
type Category string

const (
	Beer     Category = "beer"
	Wine     Category = "wine"
	Cocktail Category = "cocktail"
	Spirits  Category = "spirits"
	Cider    Category = "cider"
	Seltzer  Category = "seltzer"
	Sake     Category = "sake"
	Other    Category = "other"
)

// All lists every category in display order.
func All() []Category {
	return []Category{Beer, Wine, Cocktail, Spirits, Cider, Seltzer, Sake, Other}
}

type rule struct {
	keywords []string
	category Category
}

// Evaluated in order, first hit wins. Cocktails sit ahead of spirits so
// "whiskey sour" is a cocktail.
var rules = []rule{
	{[]string{"seltzer", "white claw", "truly"}, Seltzer},
	{[]string{"cider"}, Cider},
	{[]string{"sake", "soju"}, Sake},
	{[]string{"wine", "prosecco", "champagne", "rosé", "rose", "sangria", "cava"}, Wine},
	{[]string{"beer", "ale", "lager", "ipa", "stout", "pilsner", "draft", "pint", "brew"}, Beer},
	{[]string{"cocktail", "margarita", "martini", "mojito", "spritz", "mule", "sour", "mimosa"}, Cocktail},
	{[]string{"spirit", "whiskey", "whisky", "bourbon", "vodka", "tequila", "gin", "rum", "mezcal", "shot", "well"}, Spirits},
}

// Parse maps a free-text alcohol_category onto the closed set.
func Parse(raw string) Category {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return Other
	}

	for _, c := range All() {
		if text == string(c) {
			return c
		}
	}

	words := tokenize(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matches(text, words, kw) {
				return r.category
			}
		}
	}
	return Other
}

// multi-word keywords match as substrings, single words must match a whole
// token so "ale" does not hit "pale" or "gin" does not hit "ginger"
func matches(text string, words map[string]bool, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}
	if words[keyword] {
		return true
	}
	// plural forms: "beers", "wines", "cocktails"
	return len(keyword) > 3 && words[keyword+"s"]
}

func tokenize(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == 'é')
	}) {
		words[w] = true
	}
	return words
}

// Lookup accepts only the exact name of a category.
func Lookup(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range All() {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
