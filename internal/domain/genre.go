package domain

// Genre is one entry in the fixed catalog shared with the mobile app
type Genre struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Hindi string `json:"hindi"`
}

// DefaultGenre is used when no genre is picked
const DefaultGenre = "drama"

// Genres is the catalog of web-series genres, in display order
var Genres = []Genre{
	{Value: "action", Label: "🎬 Action", Hindi: "एक्शन"},
	{Value: "comedy", Label: "😂 Comedy", Hindi: "कॉमेडी"},
	{Value: "drama", Label: "🎭 Drama", Hindi: "ड्रामा"},
	{Value: "thriller", Label: "😱 Thriller", Hindi: "थ्रिलर"},
	{Value: "romance", Label: "💕 Romance", Hindi: "रोमांस"},
	{Value: "crime", Label: "🔍 Crime", Hindi: "क्राइम"},
	{Value: "horror", Label: "👻 Horror", Hindi: "हॉरर"},
	{Value: "sci-fi", Label: "🚀 Sci-Fi", Hindi: "साइ-फाई"},
	{Value: "fantasy", Label: "🔮 Fantasy", Hindi: "फैंटेसी"},
	{Value: "family", Label: "👨‍👩‍👧‍👦 Family", Hindi: "पारिवारिक"},
	{Value: "mystery", Label: "🔍 Mystery", Hindi: "रहस्य"},
	{Value: "biography", Label: "📖 Biography", Hindi: "जीवनी"},
	{Value: "documentary", Label: "📹 Documentary", Hindi: "वृत्तचित्र"},
	{Value: "historical", Label: "🏛️ Historical", Hindi: "ऐतिहासिक"},
	{Value: "musical", Label: "🎵 Musical", Hindi: "संगीत"},
	{Value: "adventure", Label: "🗺️ Adventure", Hindi: "रोमांच"},
	{Value: "psychological", Label: "🧠 Psychological", Hindi: "मनोवैज्ञानिक"},
	{Value: "supernatural", Label: "👻 Supernatural", Hindi: "अलौकिक"},
	{Value: "political", Label: "🏛️ Political", Hindi: "राजनीतिक"},
	{Value: "sports", Label: "⚽ Sports", Hindi: "खेल"},
}

// PopularGenres are the quick-access values shown first in pickers
var PopularGenres = []string{"drama", "comedy", "action", "thriller", "romance"}

// IsValidGenre reports whether value is in the catalog
func IsValidGenre(value string) bool {
	for _, g := range Genres {
		if g.Value == value {
			return true
		}
	}
	return false
}

// GenreLabel returns the display label for a genre value, or the value
// itself when unknown
func GenreLabel(value string) string {
	for _, g := range Genres {
		if g.Value == value {
			return g.Label
		}
	}
	return value
}

// GenreHindi returns the Hindi name for a genre value, or the value itself
// when unknown
func GenreHindi(value string) string {
	for _, g := range Genres {
		if g.Value == value {
			return g.Hindi
		}
	}
	return value
}
