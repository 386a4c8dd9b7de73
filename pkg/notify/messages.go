package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/AccelByte/extend-beat-party/pkg/engagement"
)

const (
	keyFirstBuzzTitle = "milestone.first.title"
	keyBuzzTitle      = "milestone.title"
	keyBuzzBody       = "milestone.body"
)

// Supported lists the interface languages, default first.
var Supported = []language.Tag{language.English, language.French, language.Spanish}

var (
	matcher  = language.NewMatcher(Supported)
	messages = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	set := func(tag language.Tag, key, msg string) {
		// Only fails on malformed messages, which are fixed strings here.
		_ = b.SetString(tag, key, msg)
	}

	set(language.English, keyFirstBuzzTitle, "First buzz!")
	set(language.English, keyBuzzTitle, "Your challenge is buzzing!")
	set(language.English, keyBuzzBody, "\"%s\" just passed %d views.")

	set(language.French, keyFirstBuzzTitle, "Premier buzz !")
	set(language.French, keyBuzzTitle, "Votre défi fait le buzz !")
	set(language.French, keyBuzzBody, "« %s » vient de dépasser %d vues.")

	set(language.Spanish, keyFirstBuzzTitle, "¡Primer zumbido!")
	set(language.Spanish, keyBuzzTitle, "¡Tu reto está arrasando!")
	set(language.Spanish, keyBuzzBody, "«%s» acaba de superar %d visitas.")

	return b
}

// ResolveLanguage maps a BCP 47 preference such as "fr-CA" to a supported language.
// Unknown or malformed input resolves to English.
func ResolveLanguage(pref string) language.Tag {
	tag, _ := language.MatchStrings(matcher, pref)
	base, _ := tag.Base()
	for _, supported := range Supported {
		if b, _ := supported.Base(); b == base {
			return supported
		}
	}
	return language.English
}

// MilestoneMessage renders the notification for a crossed view tier.
func MilestoneMessage(lang language.Tag, m engagement.Milestone, viewsPerTier int) Message {
	p := message.NewPrinter(lang, message.Catalog(messages))

	title := keyBuzzTitle
	if m.Tier == 1 {
		title = keyFirstBuzzTitle
	}
	return Message{
		Title: p.Sprintf(title),
		Body:  p.Sprintf(keyBuzzBody, m.Name, m.Tier*viewsPerTier),
	}
}
