package field

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/formcast/formcast"
)

// Email returns a converter that accepts a syntactically valid email
// address. Parsing goes through net/mail first, then the practical web
// checks: a single @, a non-empty local part and a dotted domain with no
// empty labels.
func Email(opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		s, ok := value.(string)
		if !ok || !isEmail(s) {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.email",
				"must be a valid email address",
				value, st, nil,
			)
		}
		return s, nil
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, validate)
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	domain := parts[1]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// URL returns a converter that accepts an absolute http or https URL.
func URL(opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		s, ok := value.(string)
		if ok {
			if u, err := url.ParseRequestURI(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
				return s, nil
			}
		}
		return nil, formcast.NewInvalid(
			formcast.KindValidation,
			"validation.url",
			"must be a valid URL",
			value, st, nil,
		)
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, validate)
}

// Regex returns a converter that accepts strings matching re.
func Regex(re *regexp.Regexp, opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.pattern",
				"must match the expected format",
				value, st,
				formcast.Args{"pattern": re.String()},
			)
		}
		return s, nil
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, validate)
}
