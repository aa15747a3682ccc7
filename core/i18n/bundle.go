package i18n

// Forum returns an I18n preloaded with the strings used by the error pages.
func Forum() (*I18n, error) {
	return New(
		WithDefaultLanguage("en"),
		WithTranslations("en", "global", map[string]any{
			"400": map[string]any{
				"title":   "Bad Request.",
				"message": "It looks like this link is malformed, please double-check and try again. Otherwise, return to the home page.",
			},
			"403": map[string]any{
				"title": "Access Denied",
			},
			"500": map[string]any{
				"title":   "Internal Error.",
				"message": "Looks like something went wrong!",
			},
			"home": "Home",
		}),
		WithTranslations("en", "error", map[string]any{
			"blacklisted-ip": "Sorry, your IP address has been banned from this community. If you feel this is in error, please contact an administrator.",
			"invalid-csrf":   "Invalid CSRF token",
		}),
		WithTranslations("de", "global", map[string]any{
			"400": map[string]any{
				"title":   "Ungültige Anfrage.",
				"message": "Dieser Link scheint fehlerhaft zu sein. Bitte überprüfe ihn oder kehre zur Startseite zurück.",
			},
			"500": map[string]any{
				"title":   "Interner Fehler.",
				"message": "Sieht aus, als wäre etwas schiefgelaufen!",
			},
			"home": "Startseite",
		}),
	)
}
