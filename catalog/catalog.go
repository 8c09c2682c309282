// Package catalog implements the message-lookup capability consumed by the
// formcast engine: given a language, a message key and named substitution
// arguments it returns a localized, formatted string.
//
// Catalogs are plain nested maps keyed by language, loadable from YAML or
// JSON. Lookup uses dot-separated keys ("validation.int_range" traverses
// "validation" then "int_range") and %{name} named substitution. The
// fallback chain is: requested language, default language, empty string
// (which makes the engine fall back to the converter's builtin template).
package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Catalog holds translations for one or more languages and implements the
// formcast.Translator contract. It is immutable after construction and safe
// for concurrent use.
type Catalog struct {
	translations map[string]map[string]any
	defaultLang  string
	logger       *slog.Logger
	logMissing   bool

	matcher language.Matcher
	tags    []language.Tag
	langs   []string
}

// Option configures a Catalog instance.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when a requested language has
// no catalog. Default is "en".
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithLogger provides a logger for diagnostics. A discard logger is used
// when none is given.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingLogging logs every missed lookup. Default is off to avoid
// flooding logs from hot validation paths.
func WithMissingLogging() Option {
	return func(c *Catalog) { c.logMissing = true }
}

// New builds a Catalog from translations keyed by language code.
func New(translations map[string]map[string]any, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		translations: translations,
		defaultLang:  "en",
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for lang, msgs := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguageCode
		}
		if msgs == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilTranslations, lang)
		}
	}

	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	c.langs = langs

	// The default language must be the matcher's first tag so it wins when
	// nothing better matches.
	tags := []language.Tag{language.Make(c.defaultLang)}
	for _, lang := range langs {
		if lang == c.defaultLang {
			continue
		}
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguageCode, lang)
		}
		tags = append(tags, tag)
	}
	c.tags = tags
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Languages returns the sorted language codes with translations loaded.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.langs))
	copy(out, c.langs)
	return out
}

// Translate implements formcast.Translator. It returns the formatted
// message, or the empty string when neither the requested nor the default
// language has the key.
func (c *Catalog) Translate(lang, key string, args map[string]any) string {
	if lang == "" {
		lang = c.defaultLang
	}

	if msg, ok := c.lookup(lang, key); ok {
		return substitute(msg, args)
	}
	if lang != c.defaultLang {
		if msg, ok := c.lookup(c.defaultLang, key); ok {
			return substitute(msg, args)
		}
	}

	if c.logMissing {
		c.logger.Warn("translation not found", "lang", lang, "key", key)
	}
	return ""
}

// Negotiate resolves an Accept-Language header to the best supported
// language code, falling back to the default language.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.defaultLang
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return c.defaultLang
	}
	_, index := language.MatchStrings(c.matcher, acceptLanguage)
	if index == 0 {
		return c.defaultLang
	}
	tag := c.tags[index]
	base, _ := tag.Base()
	// Prefer the exact loaded code when one matches the negotiated tag.
	for _, lang := range c.langs {
		if strings.EqualFold(lang, tag.String()) {
			return lang
		}
	}
	for _, lang := range c.langs {
		if strings.EqualFold(lang, base.String()) {
			return lang
		}
	}
	return c.defaultLang
}

// lookup traverses a nested translation map with a dot-separated key.
func (c *Catalog) lookup(lang, key string) (string, bool) {
	current, ok := c.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders with values from args, leaving
// unknown placeholders intact.
func substitute(tmpl string, args map[string]any) string {
	if len(args) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := args[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}
