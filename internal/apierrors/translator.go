// Package apierrors renders API error bodies with messages translated from
// the embedded TOML bundles.
package apierrors

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageDa = "da"
)

//go:embed translations/*.toml
var translations embed.FS

// Supported lists the languages with a message file, default first.
var Supported = []language.Tag{language.English, language.Danish}

var matcher = language.NewMatcher(Supported)

// Translator resolves message ids against a go-i18n bundle.
type Translator struct {
	bundle *i18n.Bundle
}

// NewTranslator loads every embedded translation file.
func NewTranslator() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := translations.ReadDir("translations")
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(translations, "translations/"+f.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", f.Name(), err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// NewTranslatorFromBundle wraps an already populated bundle.
func NewTranslatorFromBundle(b *i18n.Bundle) *Translator {
	return &Translator{bundle: b}
}

// Message returns the translation of msgKey for lang, falling back to
// English and finally to the key itself.
func (t *Translator) Message(msgKey, lang string) string {
	l := i18n.NewLocalizer(t.bundle, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		return msgKey
	}
	return msg
}

// MatchLanguage maps an Accept-Language header to a supported base language.
func MatchLanguage(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	return base.String()
}
