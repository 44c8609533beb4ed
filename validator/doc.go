// Package validator checks generated identity provider documents before they
// are published.
//
// It covers the structural rules of OpenAPI 3.0 that the catalog relies on
// (version, info, servers, responses, status codes, media types, unique
// operationIds), reference integrity against components.schemas, and
// optionally that every response example conforms to its schema.
//
// # Validation Levels
//
//   - SeverityError: the document is invalid
//   - SeverityWarning: the document is usable but a consumer may trip over
//     something, such as a placeholder path or a duplicated enum value
//
// Strict mode adds warnings for non-standard status codes.
//
// # Usage
//
//	doc, _ := catalog.Build("https://idp.example.org")
//	result, err := validator.Validate(doc, validator.WithExamples(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range result.Errors {
//		fmt.Println(e)
//	}
package validator
