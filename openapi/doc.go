// Package openapi builds OpenAPI 3 documents for services that validate
// instances of [symvalidation.Schema] descriptors.
//
// Use [Document] to describe one validation endpoint per schema, or build
// a document by hand with [DocBase], [Get] and [Post]:
//
//	d, _ := validator.Describe(ctx, entities.User)
//	doc := openapi.Document("users", "1.0", d)
//	b, _ := json.Marshal(doc)
package openapi
