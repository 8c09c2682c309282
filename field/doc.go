// Package field provides the concrete leaf converters consumed through the
// formcast.Converter contract: strings, numbers, booleans, emails, URLs,
// patterns, UUIDs, timestamps and choice sets.
//
// Each source file groups a family of converters for one domain. Every
// converter is bidirectional (ConvertIn parses and checks untrusted input,
// ConvertOut re-serializes the trusted value), honors the full core option
// set (NotEmpty, Strip, IfEmpty, IfMissing, IfInvalid, IfInvalidOut,
// AcceptLocal) and reports failures under stable message-catalog keys with
// named substitution arguments. Converters hold no state beyond their
// construction-time configuration and are safe for concurrent use.
//
// Usage:
//
//	age := field.IntRange(18, 120, formcast.NotEmpty())
//	v, inv := age.ConvertIn("42", nil)   // v == 42
//	s, inv := age.ConvertOut(42, nil)    // s == "42"
package field
