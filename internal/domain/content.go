package domain

// ContentCategory enumerates the supported creative asset categories.
type ContentCategory string

const (
	CategoryImage    ContentCategory = "image"
	CategoryLogo     ContentCategory = "logo"
	CategoryCaption  ContentCategory = "caption"
	CategoryHashtags ContentCategory = "hashtags"
	CategoryStory    ContentCategory = "story"
	CategoryCarousel ContentCategory = "carousel"
)

// LogoStyle enumerates the supported logo design styles.
type LogoStyle string

const (
	StyleWordMark        LogoStyle = "WordMark"
	StyleLetterMark      LogoStyle = "LetterMark"
	StylePictorialMark   LogoStyle = "Pictorial Mark"
	StyleAbstract        LogoStyle = "Abstract"
	StyleCombinationMark LogoStyle = "Combination Mark"
	StyleEmblem          LogoStyle = "Emblem"
)

// LogoStyles lists every style in menu order.
var LogoStyles = []LogoStyle{
	StyleWordMark,
	StyleLetterMark,
	StylePictorialMark,
	StyleAbstract,
	StyleCombinationMark,
	StyleEmblem,
}

// ParseLogoStyle resolves a user-supplied style name, tolerating the numeric
// menu choices the interactive flow historically accepted.
func ParseLogoStyle(v string) (LogoStyle, bool) {
	switch v {
	case "1", "wordmark", "WordMark":
		return StyleWordMark, true
	case "2", "lettermark", "LetterMark":
		return StyleLetterMark, true
	case "3", "pictorial", "pictorial mark", "Pictorial Mark":
		return StylePictorialMark, true
	case "4", "abstract", "Abstract":
		return StyleAbstract, true
	case "5", "combination", "combination mark", "Combination Mark":
		return StyleCombinationMark, true
	case "6", "emblem", "Emblem":
		return StyleEmblem, true
	}
	return "", false
}
