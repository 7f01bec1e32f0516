// Package legacy handles Swagger 1.x documents.
//
// A Swagger 1.x description is split across a resource listing and one API
// declaration per resource. Two steps prepare such a description for
// annotation:
//
//   - RepairTypeReferences rewrites arrays whose items name a model through
//     "type" so they name it through "$ref", which 1.x tooling accepted but
//     converters do not.
//   - A Converter merges the listing and its declarations into a single
//     Swagger 2.0 document.
//
// # Conversion
//
// SwaggerConverter is the default Converter:
//
//	conv := legacy.NewSwaggerConverter()
//	res, err := conv.ConvertWithIssues(ctx, listing, declarations)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range res.Issues {
//		fmt.Println(issue.String())
//	}
//
// Each declaration's resourcePath becomes a tag, operations are keyed by
// lowercased method, 1.x primitive aliases such as "long" or "dateTime" map to
// their 2.0 type and format, and models become definitions. Features with no
// 2.0 equivalent (authorizations, subTypes) are dropped and reported as info
// issues.
package legacy
