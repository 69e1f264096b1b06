// Package i18n holds the engine's own copy: labels and notices of the
// synthesized item scenes, the terminal screen and the journal. Story
// text is content and is not translated.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported lists the languages with a full catalog, default first.
var Supported = []language.Tag{language.English, language.TraditionalChinese}

var matcher = language.NewMatcher(Supported)

// Tag resolves a BCP 47 string (or Accept-Language value) to a
// supported language, falling back to English.
func Tag(s string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// Printer returns a printer for one of the supported languages.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func init() {
	for key, s := range english {
		_ = message.SetString(language.English, key, s)
	}
	for key, s := range traditionalChinese {
		_ = message.SetString(language.TraditionalChinese, key, s)
	}
}
