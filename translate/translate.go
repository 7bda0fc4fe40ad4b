// Package translate formats diagnostics for the user's locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

func init() {
	SetLanguage(Detect())
}

// Detect returns the preferred language of the user, or en-US when
// no locale can be parsed.
func Detect() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("int6502: locale: %v", err)
	}

	for _, name := range locales {
		tag, err := language.Parse(name)
		if err == nil {
			return tag
		}
	}

	return language.AmericanEnglish
}

// SetLanguage overrides the detected locale.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
