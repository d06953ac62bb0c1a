package translate

import i18n "github.com/goliatone/go-i18n"

// Catalog builds a translator from literal locale to key to text tables.
// It backs demos and tests where loading a full translation store is
// unnecessary. Texts are go-i18n message templates, so positional format
// arguments work the usual way.
func Catalog(defaultLocale string, locales map[string]map[string]string) (i18n.Translator, error) {
	translations := make(i18n.Translations, len(locales))
	for locale, entries := range locales {
		catalog := &i18n.TranslationCatalog{
			Locale:   i18n.Locale{Code: locale},
			Messages: make(map[string]i18n.Message, len(entries)),
		}
		for key, text := range entries {
			msg := i18n.Message{}
			msg.SetContent(text)
			catalog.Messages[key] = msg
		}
		translations[locale] = catalog
	}

	store := i18n.NewStaticStore(translations)
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(defaultLocale))
}
