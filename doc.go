// Package formcast is a bidirectional validation and conversion engine: it
// transforms untrusted, loosely structured input (flat string-keyed data as
// produced by HTML forms) into trusted, strongly typed values, and reverses
// the transformation for re-serialization. Conversion and validation are one
// pass: a conversion step can fail, and the failure is the validation
// result.
//
// Key pieces:
//
//   - Converter — the atomic contract: ConvertIn/ConvertOut, either may fail
//   - Invalid — the rich failure value; Unpack() yields a plain, shape-preserving error report
//   - All/Any — compound combinators without structural keys
//   - Schema — field aggregator over a mapping, exhaustive error collection
//   - ForEach — sequence aggregator, order- and length-preserving
//
// Subpackages supply the collaborators: flatkey bridges flat form keys to
// nested structures, field holds the concrete leaf converters, catalog
// implements the message-lookup capability, and binder adapts HTTP requests.
//
// Basic Usage:
//
//	signup := formcast.NewSchema(
//		formcast.Field("email", field.Email(formcast.Strip(), formcast.NotEmpty())),
//		formcast.Field("age", field.IntRange(18, 120)),
//		formcast.Field("tags", formcast.NewForEach(field.String())),
//	)
//
//	clean, inv := signup.ConvertIn(input, &formcast.State{Lang: "en"})
//	if inv != nil {
//		report := inv.Unpack() // map[string]any of messages, ready to render
//		_ = report
//	}
//	_ = clean
//
// Every converter is immutable after construction and safe to share across
// concurrent validation trees. The engine performs no I/O and never logs.
package formcast
