// Package binder adapts HTTP requests to the formcast engine: it parses the
// request payload into the flat (key, value) pair interface, decodes it
// through the flatkey codec and runs the resulting nested structure through
// a Schema.
//
// On validation failure the returned error is the *formcast.Invalid itself,
// so callers extract the full error tree with errors.As and render
// Unpack() directly.
package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/formcast/formcast"
	"github.com/formcast/formcast/flatkey"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form validates an application/x-www-form-urlencoded or multipart/form-data
// request body against the schema and returns the converted mapping.
//
// For urlencoded bodies the raw body is parsed into ordered pairs, so the
// flatkey codec sees fields in submission order. Multipart values go through
// the codec's deterministic url.Values path instead, since multipart parsing
// does not preserve ordering.
func Form(r *http.Request, schema *formcast.Schema, st *formcast.State) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed content type", ErrInvalidForm)
	}

	var nested map[string]any

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		pairs, err := parsePairs(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		nested = flatkey.Decode(pairs)

	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		values := url.Values{}
		if r.MultipartForm != nil {
			values = url.Values(r.MultipartForm.Value)
		}
		nested = flatkey.DecodeValues(values)

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	return convert(nested, schema, st)
}

// Query validates the request's query string against the schema, preserving
// parameter order.
func Query(r *http.Request, schema *formcast.Schema, st *formcast.State) (map[string]any, error) {
	pairs, err := parsePairs(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return convert(flatkey.Decode(pairs), schema, st)
}

// JSON validates an application/json request body against the schema. JSON
// bodies are already nested, so the flatkey codec is skipped.
func JSON(r *http.Request, schema *formcast.Schema, st *formcast.State) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
	}

	var nested map[string]any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&nested); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return convert(nested, schema, st)
}

func convert(nested map[string]any, schema *formcast.Schema, st *formcast.State) (map[string]any, error) {
	out, inv := schema.ConvertIn(nested, st)
	if inv != nil {
		return nil, inv
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: schema did not produce a mapping", ErrInvalidForm)
	}
	return m, nil
}

// parsePairs parses an urlencoded payload into ordered pairs. It mirrors
// url.ParseQuery except that submission order survives.
func parsePairs(raw string) ([]flatkey.Pair, error) {
	var pairs []flatkey.Pair
	for _, chunk := range strings.Split(raw, "&") {
		if chunk == "" {
			continue
		}
		key, value, _ := strings.Cut(chunk, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, flatkey.Pair{Key: k, Value: v})
	}
	return pairs, nil
}
