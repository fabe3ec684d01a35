package category

// Display holds what the front end needs to render a category badge.
type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var displays = map[Category]Display{
	Beer:     {Label: "Beer", Color: "#F2A900", Icon: "beer.svg"},
	Wine:     {Label: "Wine", Color: "#7B1E3A", Icon: "wine.svg"},
	Cocktail: {Label: "Cocktails", Color: "#E8508B", Icon: "cocktail.svg"},
	Spirits:  {Label: "Spirits", Color: "#8C5A2B", Icon: "spirits.svg"},
	Cider:    {Label: "Cider", Color: "#C9A227", Icon: "cider.svg"},
	Seltzer:  {Label: "Seltzer", Color: "#4FB3BF", Icon: "seltzer.svg"},
	Sake:     {Label: "Sake", Color: "#B8C4CC", Icon: "sake.svg"},
	Other:    {Label: "Drinks", Color: "#6B7280", Icon: "drink.svg"},
}

func DisplayFor(c Category) Display {
	if d, ok := displays[c]; ok {
		return d
	}
	return displays[Other]
}
