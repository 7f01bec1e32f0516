package params

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/schemautil"
	"github.com/erraggy/oasexample/oaserrors"
)

// Dialect selects the parameter layout rules.
type Dialect string

const (
	// DialectV2 reads Swagger 2.0 parameters: body parameters carry a schema,
	// query parameters carry their type inline.
	DialectV2 Dialect = "v2"
	// DialectV3 reads OpenAPI 3.x parameters and the request body.
	DialectV3 Dialect = "v3"
)

// Body parameter shapes.
const (
	BodyTypeObject = "object"
	BodyTypeArray  = "array"
)

// Keys under which the required flag of a parameter is emitted.
const (
	RequiredKey = "required"
	// LegacyRequiredKey is the historical spelling used for Swagger 2.0 query
	// parameters. Consumers of the params record depend on it.
	LegacyRequiredKey = "requierd"
)

// maxRefHops bounds how many chained $ref values are followed for one node.
const maxRefHops = 32

// Parameter is a normalized parameter record.
type Parameter struct {
	Name string
	// Type holds exactly one semantic type. Any type name containing "int"
	// is reported as "number".
	Type []string
	// Required reports whether the parameter must be supplied.
	Required bool
	// RequiredKey is the key Required is emitted under. Empty means RequiredKey.
	RequiredKey string
}

// ToObject converts the parameter into its document form.
func (p Parameter) ToObject() *document.Object {
	types := make([]any, len(p.Type))
	for i, t := range p.Type {
		types[i] = t
	}
	key := p.RequiredKey
	if key == "" {
		key = RequiredKey
	}
	return document.FromPairs("name", p.Name, "type", types, key, p.Required)
}

// Result is the normalized parameter model of one operation.
type Result struct {
	// BodyParamsType is "object" unless the body schema is an array.
	BodyParamsType string
	BodyParams     []Parameter
	QueryParams    []Parameter
}

// ToObject converts the result into the params record attached to an
// operation.
func (r *Result) ToObject() *document.Object {
	body := make([]any, 0, len(r.BodyParams))
	for _, p := range r.BodyParams {
		body = append(body, p.ToObject())
	}
	query := make([]any, 0, len(r.QueryParams))
	for _, p := range r.QueryParams {
		query = append(query, p.ToObject())
	}
	return document.FromPairs(
		"bodyParamsType", r.BodyParamsType,
		"bodyParams", body,
		"queryParams", query,
	)
}

// Option configures extraction.
type Option func(*extractor)

// WithRefLookup sets the function used to follow "$ref" values on
// parameters, request bodies, and schemas.
func WithRefLookup(lookup func(ref string) (*document.Object, bool)) Option {
	return func(e *extractor) {
		e.lookup = lookup
	}
}

// WithCorrectRequiredKey emits Swagger 2.0 query parameters under the
// "required" key instead of the legacy "requierd" spelling.
func WithCorrectRequiredKey(enabled bool) Option {
	return func(e *extractor) {
		e.correctKey = enabled
	}
}

type extractor struct {
	dialect    Dialect
	lookup     func(ref string) (*document.Object, bool)
	correctKey bool
}

// Extract reads the parameters of an operation according to dialect.
//
// Any deviation from the expected shape (a parameter without a type, an
// OpenAPI 3 parameter without a schema, a body property without a type)
// returns a *oaserrors.ParameterExtractionError and no result.
func Extract(op *document.Object, dialect Dialect, opts ...Option) (*Result, error) {
	e := &extractor{dialect: dialect}
	for _, opt := range opts {
		opt(e)
	}

	if op == nil {
		return nil, e.errorf("", "operation is nil")
	}

	res := &Result{
		BodyParamsType: BodyTypeObject,
		BodyParams:     []Parameter{},
		QueryParams:    []Parameter{},
	}

	var err error
	switch dialect {
	case DialectV2:
		err = e.extractV2(op, res)
	case DialectV3:
		err = e.extractV3(op, res)
	default:
		return nil, &oaserrors.ConfigError{Option: "dialect", Value: dialect, Message: "unsupported dialect"}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *extractor) extractV2(op *document.Object, res *Result) error {
	params, err := e.parameters(op)
	if err != nil {
		return err
	}

	for i, raw := range params {
		path := fmt.Sprintf("parameters[%d]", i)
		param, ok := e.resolve(raw)
		if !ok {
			return e.errorf(path, "parameter is not an object")
		}

		in, _ := param.String("in")
		switch in {
		case "body":
			schema, _ := e.resolve(param.Value("schema"))
			switch schemautil.InferType(schema) {
			case "array":
				res.BodyParamsType = BodyTypeArray
			case "object":
				props, err := e.properties(schema, path+".schema", func(string) bool { return false })
				if err != nil {
					return err
				}
				res.BodyParams = append(res.BodyParams, props...)
			}

		case "query":
			name, _ := param.String("name")
			typ := schemautil.GetPrimaryType(param)
			if typ == "" {
				return e.errorf(path+".type", "query parameter %q has no type", name)
			}
			required, ok := param.Bool(RequiredKey)
			if !ok {
				required, _ = param.Bool(LegacyRequiredKey)
			}
			key := LegacyRequiredKey
			if e.correctKey {
				key = RequiredKey
			}
			res.QueryParams = append(res.QueryParams, Parameter{
				Name:        name,
				Type:        []string{foldType(typ)},
				Required:    required,
				RequiredKey: key,
			})
		}
	}
	return nil
}

func (e *extractor) extractV3(op *document.Object, res *Result) error {
	params, err := e.parameters(op)
	if err != nil {
		return err
	}

	for i, raw := range params {
		path := fmt.Sprintf("parameters[%d]", i)
		param, ok := e.resolve(raw)
		if !ok {
			return e.errorf(path, "parameter is not an object")
		}
		name, _ := param.String("name")
		schema, ok := e.resolve(param.Value("schema"))
		if !ok {
			return e.errorf(path+".schema", "parameter %q has no schema", name)
		}
		typ := schemautil.InferType(schema)
		if typ == "" {
			return e.errorf(path+".schema.type", "parameter %q has no type", name)
		}
		required, _ := param.Bool("required")
		res.QueryParams = append(res.QueryParams, Parameter{
			Name:     name,
			Type:     []string{foldType(typ)},
			Required: required,
		})
	}

	body, ok := e.resolve(op.Value("requestBody"))
	if !ok {
		return nil
	}
	content, ok := body.Object("content")
	if !ok {
		return nil
	}
	mediaType, mediaValue, ok := content.First()
	if !ok {
		return nil
	}
	media, ok := mediaValue.(*document.Object)
	if !ok {
		return e.errorf("requestBody.content."+mediaType, "media type is not an object")
	}
	schema, _ := e.resolve(media.Value("schema"))

	switch schemautil.InferType(schema) {
	case "array":
		res.BodyParamsType = BodyTypeArray
	case "object":
		required := make(map[string]bool)
		for _, v := range schemautil.NormalizeArray(schema.Value("required")) {
			if s, ok := v.(string); ok {
				required[s] = true
			}
		}
		props, err := e.properties(schema, "requestBody.content."+mediaType+".schema", func(name string) bool {
			return required[name]
		})
		if err != nil {
			return err
		}
		res.BodyParams = append(res.BodyParams, props...)
	}
	return nil
}

// parameters returns the operation's declared parameters. An absent list is
// empty; anything other than a sequence is a shape error.
func (e *extractor) parameters(op *document.Object) ([]any, error) {
	v, ok := op.Get("parameters")
	if !ok || v == nil {
		return nil, nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, e.errorf("parameters", "expected a sequence, got %s", document.TypeName(v))
	}
	return seq, nil
}

func (e *extractor) properties(schema *document.Object, path string, isRequired func(string) bool) ([]Parameter, error) {
	props := schemautil.Objectify(schema.Value("properties"))
	out := make([]Parameter, 0, props.Len())
	var err error
	props.Range(func(name string, raw any) bool {
		prop, ok := e.resolve(raw)
		if !ok {
			err = e.errorf(path+".properties."+name, "property is not an object")
			return false
		}
		typ := schemautil.InferType(prop)
		if typ == "" {
			err = e.errorf(path+".properties."+name+".type", "property %q has no type", name)
			return false
		}
		out = append(out, Parameter{
			Name:     name,
			Type:     []string{foldType(typ)},
			Required: isRequired(name),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolve returns v as an object, following "$ref" through the lookup.
// An unresolvable reference leaves the referencing node in place.
func (e *extractor) resolve(v any) (*document.Object, bool) {
	obj, ok := v.(*document.Object)
	if !ok || obj == nil {
		return nil, false
	}
	for range maxRefHops {
		ref, has := obj.String("$ref")
		if !has || e.lookup == nil {
			return obj, true
		}
		target, found := e.lookup(ref)
		if !found {
			return obj, true
		}
		obj = target
	}
	return obj, true
}

func (e *extractor) errorf(path, format string, args ...any) error {
	return &oaserrors.ParameterExtractionError{
		Path:    path,
		Dialect: string(e.dialect),
		Message: fmt.Sprintf(format, args...),
	}
}

// foldType reports every integer flavour as "number".
func foldType(t string) string {
	if strings.Contains(t, "int") {
		return "number"
	}
	return t
}
