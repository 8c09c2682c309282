package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadYAML builds a Catalog from a YAML document whose top-level keys are
// language codes:
//
//	en:
//	  validation:
//	    empty: a value is required
//	de:
//	  validation:
//	    empty: Pflichtfeld
func LoadYAML(content []byte, opts ...Option) (*Catalog, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	translations, err := toTranslations(data)
	if err != nil {
		return nil, err
	}
	return New(translations, opts...)
}

// LoadJSON builds a Catalog from the JSON equivalent of the YAML layout.
func LoadJSON(content []byte, opts ...Option) (*Catalog, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	translations, err := toTranslations(data)
	if err != nil {
		return nil, err
	}
	return New(translations, opts...)
}

func toTranslations(data map[string]any) (map[string]map[string]any, error) {
	translations := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		msgs, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected a map, got %T", ErrInvalidStructure, lang, val)
		}
		translations[lang] = msgs
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidStructure)
	}
	return translations, nil
}
