// Package params normalizes the parameters declared by an operation into a
// dialect independent record:
//
//	{
//	  "bodyParamsType": "object",
//	  "bodyParams":  [{"name": "id", "type": ["number"], "required": false}],
//	  "queryParams": [{"name": "limit", "type": ["number"], "requierd": true}]
//	}
//
// Swagger 2.0 (DialectV2) reads body parameters from their schema and query
// parameters from their inline type. Body properties are always reported as
// not required. Query parameters are emitted under the "requierd" key that
// downstream consumers of this record expect; WithCorrectRequiredKey switches
// to "required".
//
// OpenAPI 3.x (DialectV3) reports every declared parameter as a query
// parameter typed from its schema, and reads the body from the first media
// type of the request body. Body properties are required when listed in the
// schema's required list.
//
// In both dialects the type is a one element list, and any type name that
// contains "int" is reported as "number".
package params
