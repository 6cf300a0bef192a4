package models

// Category is the closed set of shelf genres.
type Category string

const (
	CategoryBusiness Category = "business"
	CategoryLife     Category = "life"
	CategoryHobby    Category = "hobby"
	CategoryScience  Category = "science"
	CategoryHistory  Category = "history"
	CategoryArt      Category = "art"
	CategoryNovel    Category = "novel"
	CategoryComic    Category = "comic"
	CategoryOther    Category = "other"
)

type CategoryChoice struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

// Categories in display order.
var Categories = []CategoryChoice{
	{CategoryBusiness, "ビジネス"},
	{CategoryLife, "生活"},
	{CategoryHobby, "趣味"},
	{CategoryScience, "科学"},
	{CategoryHistory, "歴史"},
	{CategoryArt, "芸術"},
	{CategoryNovel, "小説"},
	{CategoryComic, "漫画"},
	{CategoryOther, "その他"},
}

func (c Category) Valid() bool {
	for _, choice := range Categories {
		if choice.Value == c {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	for _, choice := range Categories {
		if choice.Value == c {
			return choice.Label
		}
	}
	return string(c)
}

// CategoryCheck is the SQL CHECK expression matching Categories.
const CategoryCheck = "category IN ('business','life','hobby','science','history','art','novel','comic','other')"
