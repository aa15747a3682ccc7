// Package i18n translates the forum's bracket tokens, such as
// "[[global:400.title]]", into the language negotiated from Accept-Language.
//
// Error responses sent to API clients keep the raw token; the client
// translates it. Server-rendered error pages translate it here:
//
//	bundle, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithTranslations("en", "global", map[string]any{
//			"400": map[string]any{"title": "Bad Request"},
//		}),
//	)
//	lang := bundle.Match(r.Header.Get("Accept-Language"))
//	title := bundle.Translate(lang, "[[global:400.title]]") // "Bad Request"
//
// Tokens may carry comma-separated arguments substituted for %1, %2, ...:
//
//	bundle.Translate("en", "[[error:too-long, 20]]")
package i18n
