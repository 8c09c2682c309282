package catalog

import "errors"

// Catalog construction and loading errors.
var (
	ErrEmptyLanguageCode   = errors.New("empty language code")
	ErrInvalidLanguageCode = errors.New("invalid language code")
	ErrNilTranslations     = errors.New("nil translations map for language")
	ErrInvalidYAML         = errors.New("invalid YAML catalog")
	ErrInvalidJSON         = errors.New("invalid JSON catalog")
	ErrInvalidStructure    = errors.New("invalid catalog structure")
)
