package i18n

// Translator binds an I18n to one language.
type Translator struct {
	i18n     *I18n
	language string
}

// NewTranslator creates a Translator for language. An empty language means
// the default language.
func NewTranslator(i18n *I18n, language string) *Translator {
	if i18n == nil {
		panic("i18n: localization service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{i18n: i18n, language: language}
}

// Translate replaces bracket tokens in text.
func (t *Translator) Translate(text string) string {
	if t == nil {
		return text
	}
	return t.i18n.Translate(t.language, text)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	if t == nil {
		return ""
	}
	return t.language
}
