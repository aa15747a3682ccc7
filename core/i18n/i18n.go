package i18n

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

var (
	ErrEmptyLanguage  = errors.New("i18n: language cannot be empty")
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
	ErrInvalidTag     = errors.New("i18n: invalid language tag")
)

// tokenPattern matches [[namespace:key]] and [[namespace:key, arg1, arg2]].
var tokenPattern = regexp.MustCompile(`\[\[([\w-]+):([\w.-]+)(?:,\s*([^\]]*))?\]\]`)

// I18n holds translations for several languages. It is immutable after
// creation and safe for concurrent use.
type I18n struct {
	// key format: "lang:namespace:key.path"
	translations map[string]string
	defaultLang  string
	languages    []string
	matcher      language.Matcher
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	langs := []string{i.defaultLang}
	for _, l := range i.languages {
		if l != i.defaultLang {
			langs = append(langs, l)
		}
	}
	i.languages = langs

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, l)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithTranslations loads translations for a language and namespace. Nested
// maps are flattened into dotted keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		for key, value := range flatten(translations, "") {
			i.translations[buildKey(lang, namespace, key)] = value
		}
		if !containsLang(i.languages, lang) {
			i.languages = append(i.languages, lang)
		}
		return nil
	}
}

// T returns the translation for key, falling back to the default language,
// and finally to the key itself.
func (i *I18n) T(lang, namespace, key string) string {
	if v, ok := i.lookup(lang, namespace, key); ok {
		return v
	}
	return key
}

// Translate replaces every bracket token in text. Unknown tokens are left as is.
func (i *I18n) Translate(lang, text string) string {
	if !strings.Contains(text, "[[") {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		m := tokenPattern.FindStringSubmatch(token)
		v, ok := i.lookup(lang, m[1], m[2])
		if !ok {
			return token
		}
		if m[3] == "" {
			return v
		}
		for n, arg := range strings.Split(m[3], ",") {
			v = strings.ReplaceAll(v, "%"+strconv.Itoa(n+1), strings.TrimSpace(arg))
		}
		return v
	})
}

// Match picks the best supported language for an Accept-Language header.
// Returns the default language when nothing matches.
func (i *I18n) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return i.defaultLang
	}
	_, idx := language.MatchStrings(i.matcher, acceptLanguage)
	if idx < 0 || idx >= len(i.languages) {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	if v, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return v, true
	}
	if lang != i.defaultLang {
		if v, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return v, true
		}
	}
	return "", false
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(in map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			for fk, fv := range flatten(val, key) {
				out[fk] = fv
			}
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}

func containsLang(langs []string, lang string) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}
