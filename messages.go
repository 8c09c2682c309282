package formcast

import (
	"fmt"
	"regexp"
)

// Translator is the message-lookup capability. Given a language, a message
// key and named substitution arguments it returns a localized, formatted
// string, or the empty string when it has no translation for the key. The
// engine never embeds translation logic; it only calls this capability and
// falls back to the converter's builtin template on a miss.
type Translator interface {
	Translate(lang, key string, args map[string]any) string
}

// Args carries named substitution values for message templates.
type Args map[string]any

// resolveMessage implements the documented fallback chain: bound translator
// first, builtin template second.
func resolveMessage(st *State, key, fallback string, args Args) string {
	if st != nil && st.Translator != nil {
		if msg := st.Translator.Translate(st.Lang, key, args); msg != "" {
			return msg
		}
	}
	return Sprintf(fallback, args)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Sprintf substitutes named placeholders of the form %{name} in tmpl with
// values from args. Unknown placeholders are left untouched so a broken
// catalog entry stays diagnosable.
func Sprintf(tmpl string, args Args) string {
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
