package legacy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/httputil"
	"github.com/erraggy/oasexample/internal/issues"
	"github.com/erraggy/oasexample/internal/severity"
	"github.com/erraggy/oasexample/oaserrors"
)

// TargetVersion is the Swagger version produced by SwaggerConverter.
const TargetVersion = "2.0"

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates content that could not be converted
	SeverityCritical = severity.SeverityCritical
)

// ConversionIssue represents a single conversion issue or limitation
type ConversionIssue = issues.Issue

// Converter merges a Swagger 1.x resource listing and its API declarations
// into one Swagger 2.0 document. apis are given in the order of the
// listing's "apis" entries.
type Converter interface {
	Convert(ctx context.Context, listing *document.Object, apis []*document.Object) (*document.Object, error)
}

// IssueConverter is a Converter that also reports what it could not carry
// over.
type IssueConverter interface {
	Converter
	ConvertWithIssues(ctx context.Context, listing *document.Object, apis []*document.Object) (*ConversionResult, error)
}

// ConversionResult contains a converted document and what was lost on the way.
type ConversionResult struct {
	// Document is the Swagger 2.0 document
	Document *document.Object
	// SourceVersion is the swaggerVersion of the resource listing
	SourceVersion string
	// Issues contains all conversion issues
	Issues []ConversionIssue
	// PathCount is the number of distinct paths produced
	PathCount int
	// OperationCount is the number of operations produced
	OperationCount int
	// DefinitionCount is the number of models carried into definitions
	DefinitionCount int
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return issues.Count(r.Issues).Warning > 0
}

// SwaggerConverter converts Swagger 1.2 (and the compatible 1.0/1.1)
// documents to Swagger 2.0.
type SwaggerConverter struct {
	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool
}

// NewSwaggerConverter creates a SwaggerConverter with default settings.
func NewSwaggerConverter() *SwaggerConverter {
	return &SwaggerConverter{IncludeInfo: true}
}

var (
	_ Converter      = (*SwaggerConverter)(nil)
	_ IssueConverter = (*SwaggerConverter)(nil)
)

// Convert implements Converter.
func (c *SwaggerConverter) Convert(ctx context.Context, listing *document.Object, apis []*document.Object) (*document.Object, error) {
	res, err := c.ConvertWithIssues(ctx, listing, apis)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// ConvertWithIssues converts the listing and its declarations and reports
// the issues met on the way. It fails with *oaserrors.ConversionError when
// the input does not have the Swagger 1.x shape or ctx is done.
func (c *SwaggerConverter) ConvertWithIssues(ctx context.Context, listing *document.Object, apis []*document.Object) (*ConversionResult, error) {
	if listing == nil {
		return nil, &oaserrors.ConversionError{TargetVersion: TargetVersion, Message: "resource listing is nil"}
	}
	version, _ := listing.String("swaggerVersion")

	conv := &conversion{
		includeInfo: c.IncludeInfo,
		lower:       c.caser(),
		version:     version,
		models:      document.NewObject(),
		result:      &ConversionResult{SourceVersion: version},
	}
	doc, err := conv.run(ctx, listing, apis)
	if err != nil {
		return nil, err
	}
	conv.result.Document = doc
	return conv.result, nil
}

// caser lowercases HTTP methods and 1.x type names. A Caser keeps state, so
// every conversion gets its own.
func (c *SwaggerConverter) caser() cases.Caser {
	return cases.Lower(language.Und)
}

// conversion holds the state of one ConvertWithIssues call.
type conversion struct {
	includeInfo bool
	lower       cases.Caser
	version     string
	// models is the union of every declaration's models
	models *document.Object
	// source is the resourcePath of the declaration being converted
	source string
	result *ConversionResult
}

func (c *conversion) addIssue(sev Severity, path, message string) {
	if sev == SeverityInfo && !c.includeInfo {
		return
	}
	c.result.Issues = append(c.result.Issues, ConversionIssue{
		Path:     path,
		Message:  message,
		Severity: sev,
		Source:   c.source,
	})
}

func (c *conversion) fail(path, format string, args ...any) error {
	return &oaserrors.ConversionError{
		SourceVersion: c.version,
		TargetVersion: TargetVersion,
		Path:          path,
		Message:       fmt.Sprintf(format, args...),
	}
}

func (c *conversion) run(ctx context.Context, listing *document.Object, apis []*document.Object) (*document.Object, error) {
	for i, decl := range apis {
		if decl == nil {
			return nil, c.fail(fmt.Sprintf("apis[%d]", i), "API declaration is nil")
		}
		c.collectModels(decl)
	}

	out := document.NewObject()
	out.Set("swagger", TargetVersion)
	out.Set("info", c.info(listing, apis))
	c.server(out, apis)

	listed, _ := listing.Slice("apis")
	tags := make([]any, 0, len(apis))
	paths := document.NewObject()

	for i, decl := range apis {
		if err := ctx.Err(); err != nil {
			return nil, &oaserrors.ConversionError{
				SourceVersion: c.version,
				TargetVersion: TargetVersion,
				Message:       "conversion canceled",
				Cause:         err,
			}
		}

		resourcePath, _ := decl.String("resourcePath")
		c.source = resourcePath
		tag := strings.TrimPrefix(resourcePath, "/")
		if tag != "" {
			t := document.FromPairs("name", tag)
			if i < len(listed) {
				if entry, ok := listed[i].(*document.Object); ok {
					if desc, ok := entry.String("description"); ok {
						t.Set("description", desc)
					}
				}
			}
			tags = append(tags, t)
		}

		if err := c.declaration(decl, tag, paths); err != nil {
			return nil, err
		}
	}
	c.source = ""

	if len(tags) > 0 {
		out.Set("tags", tags)
	}
	out.Set("paths", paths)
	c.result.PathCount = paths.Len()

	if defs := c.definitions(); defs.Len() > 0 {
		out.Set("definitions", defs)
		c.result.DefinitionCount = defs.Len()
	}

	if listing.Has("authorizations") {
		c.addIssue(SeverityInfo, "authorizations", "authorizations are not converted")
	}
	return out, nil
}

func (c *conversion) collectModels(decl *document.Object) {
	resourcePath, _ := decl.String("resourcePath")
	models, _ := decl.Object("models")
	models.Range(func(name string, model any) bool {
		if c.models.Has(name) {
			c.source = resourcePath
			c.addIssue(SeverityWarning, "models."+name, "model is declared more than once; keeping the first declaration")
			return true
		}
		c.models.Set(name, model)
		return true
	})
	c.source = ""
}

func (c *conversion) info(listing *document.Object, apis []*document.Object) *document.Object {
	src, _ := listing.Object("info")
	info := document.NewObject()

	title, _ := src.String("title")
	info.Set("title", title)
	if v, ok := src.String("description"); ok {
		info.Set("description", v)
	}
	if v, ok := src.String("termsOfServiceUrl"); ok {
		info.Set("termsOfService", v)
	}
	if v, ok := src.String("contact"); ok {
		info.Set("contact", document.FromPairs("email", v))
	}
	if name, ok := src.String("license"); ok {
		license := document.FromPairs("name", name)
		if u, ok := src.String("licenseUrl"); ok {
			license.Set("url", u)
		}
		info.Set("license", license)
	}

	version, ok := listing.String("apiVersion")
	for _, decl := range apis {
		if ok {
			break
		}
		version, ok = decl.String("apiVersion")
	}
	if !ok {
		version = "1.0.0"
		c.addIssue(SeverityInfo, "apiVersion", "no apiVersion declared; using 1.0.0")
	}
	info.Set("version", version)
	return info
}

// server sets host, basePath and schemes from the first declaration that has
// a basePath.
func (c *conversion) server(out *document.Object, apis []*document.Object) {
	var base string
	for _, decl := range apis {
		bp, ok := decl.String("basePath")
		if !ok || bp == "" {
			continue
		}
		if base == "" {
			base = bp
			continue
		}
		if bp != base {
			resourcePath, _ := decl.String("resourcePath")
			c.source = resourcePath
			c.addIssue(SeverityWarning, "basePath", fmt.Sprintf("basePath %q differs from %q; using the first", bp, base))
			c.source = ""
		}
	}
	if base == "" {
		return
	}

	u, err := url.Parse(base)
	if err != nil {
		c.addIssue(SeverityWarning, "basePath", fmt.Sprintf("invalid basePath %q: %v", base, err))
		return
	}
	if u.Host != "" {
		out.Set("host", u.Host)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	out.Set("basePath", path)
	if u.Scheme != "" {
		out.Set("schemes", []any{u.Scheme})
	}
}

func (c *conversion) declaration(decl *document.Object, tag string, paths *document.Object) error {
	v, ok := decl.Get("apis")
	if !ok {
		c.addIssue(SeverityWarning, "apis", "API declaration has no apis")
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return c.fail("apis", "expected a sequence, got %s", document.TypeName(v))
	}

	for i, raw := range list {
		api, ok := raw.(*document.Object)
		if !ok {
			return c.fail(fmt.Sprintf("apis[%d]", i), "expected an object, got %s", document.TypeName(raw))
		}
		path, _ := api.String("path")
		if path == "" {
			c.addIssue(SeverityWarning, fmt.Sprintf("apis[%d].path", i), "api has no path; skipped")
			continue
		}

		item, ok := paths.Object(path)
		if !ok {
			item = document.NewObject()
			paths.Set(path, item)
		}

		ops, _ := api.Slice("operations")
		for j, rawOp := range ops {
			opPath := fmt.Sprintf("apis[%d].operations[%d]", i, j)
			op, ok := rawOp.(*document.Object)
			if !ok {
				return c.fail(opPath, "expected an object, got %s", document.TypeName(rawOp))
			}
			method, _ := op.String("method")
			if method == "" {
				method, _ = op.String("httpMethod")
			}
			method = c.lower.String(method)
			if !httputil.IsOperationMethod(method) {
				c.addIssue(SeverityWarning, opPath+".method", fmt.Sprintf("unsupported method %q; operation skipped", method))
				continue
			}
			if item.Has(method) {
				c.addIssue(SeverityWarning, opPath, fmt.Sprintf("duplicate %s %s; keeping the first", method, path))
				continue
			}
			item.Set(method, c.operation(decl, op, tag, opPath))
			c.result.OperationCount++
		}
	}
	return nil
}

func (c *conversion) operation(decl, op *document.Object, tag, path string) *document.Object {
	out := document.NewObject()
	if tag != "" {
		out.Set("tags", []any{tag})
	}
	if v, ok := op.String("summary"); ok {
		out.Set("summary", v)
	}
	if v, ok := op.String("notes"); ok {
		out.Set("description", v)
	}
	if v, ok := op.String("nickname"); ok {
		out.Set("operationId", v)
	}
	for _, key := range []string{"produces", "consumes"} {
		if types := c.mediaTypes(op, decl, key, path); len(types) > 0 {
			out.Set(key, types)
		}
	}

	params, _ := op.Slice("parameters")
	converted := make([]any, 0, len(params))
	for i, raw := range params {
		p, ok := raw.(*document.Object)
		if !ok {
			c.addIssue(SeverityWarning, fmt.Sprintf("%s.parameters[%d]", path, i), "parameter is not an object; skipped")
			continue
		}
		if param := c.parameter(p, fmt.Sprintf("%s.parameters[%d]", path, i)); param != nil {
			converted = append(converted, param)
		}
	}
	if len(converted) > 0 {
		out.Set("parameters", converted)
	}

	out.Set("responses", c.responses(op, path))

	switch v := op.Value("deprecated").(type) {
	case bool:
		if v {
			out.Set("deprecated", true)
		}
	case string:
		if v == "true" {
			out.Set("deprecated", true)
		}
	}
	if op.Has("authorizations") {
		c.addIssue(SeverityInfo, path+".authorizations", "authorizations are not converted")
	}
	return out
}

func (c *conversion) mediaTypes(op, decl *document.Object, key, path string) []any {
	list, ok := op.Slice(key)
	if !ok {
		list, _ = decl.Slice(key)
	}
	out := make([]any, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok || !httputil.IsValidMediaType(s) {
			c.addIssue(SeverityWarning, path+"."+key, fmt.Sprintf("invalid media type %v; dropped", v))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *conversion) parameter(p *document.Object, path string) *document.Object {
	name, _ := p.String("name")
	paramType, _ := p.String("paramType")
	in := paramType
	switch paramType {
	case "form":
		in = "formData"
	case "query", "path", "header", "body":
	default:
		c.addIssue(SeverityWarning, path+".paramType", fmt.Sprintf("unsupported paramType %q; parameter %q skipped", paramType, name))
		return nil
	}

	out := document.FromPairs("name", name, "in", in)
	if v, ok := p.String("description"); ok {
		out.Set("description", v)
	}
	required, _ := p.Bool("required")
	if in == "path" {
		required = true
	}
	out.Set("required", required)

	if in == "body" {
		schema := c.schema(p, path)
		if schema == nil {
			c.addIssue(SeverityWarning, path, fmt.Sprintf("body parameter %q has no type; using an empty schema", name))
			schema = document.NewObject()
		}
		out.Set("schema", schema)
		return out
	}

	schema := c.schema(p, path)
	if schema == nil || schema.Has("$ref") {
		c.addIssue(SeverityWarning, path+".type", fmt.Sprintf("parameter %q is not a primitive; using string", name))
		schema = document.FromPairs("type", "string")
	}
	if multi, _ := p.Bool("allowMultiple"); multi && schema.Value("type") != "array" {
		schema = document.FromPairs("type", "array", "items", schema, "collectionFormat", "csv")
	}
	schema.Range(func(key string, v any) bool {
		out.Set(key, v)
		return true
	})
	return out
}

func (c *conversion) responses(op *document.Object, path string) *document.Object {
	out := document.NewObject()
	if schema := c.schema(op, path); schema != nil {
		out.Set("200", document.FromPairs("description", "Success", "schema", schema))
	}

	messages, _ := op.Slice("responseMessages")
	if len(messages) == 0 {
		messages, _ = op.Slice("errorResponses")
	}
	for i, raw := range messages {
		msg, ok := raw.(*document.Object)
		if !ok {
			continue
		}
		code := fmt.Sprint(msg.Value("code"))
		if !httputil.ValidateStatusCode(code) {
			c.addIssue(SeverityWarning, fmt.Sprintf("%s.responseMessages[%d].code", path, i), fmt.Sprintf("invalid status code %q; skipped", code))
			continue
		}
		description, _ := msg.String("message")
		if description == "" {
			description, _ = msg.String("reason")
		}
		resp := document.FromPairs("description", description)
		if model, ok := msg.String("responseModel"); ok {
			if schema := c.schema(document.FromPairs("type", model), path); schema != nil {
				resp.Set("schema", schema)
			}
		}
		if existing, ok := out.Object(code); ok {
			existing.Set("description", description)
			continue
		}
		out.Set(code, resp)
	}

	if out.Len() == 0 {
		out.Set("200", document.FromPairs("description", "No response was specified"))
	}
	return out
}

func (c *conversion) definitions() *document.Object {
	defs := document.NewObject()
	c.models.Range(func(name string, raw any) bool {
		model, ok := raw.(*document.Object)
		if !ok {
			c.addIssue(SeverityWarning, "models."+name, "model is not an object; skipped")
			return true
		}
		defs.Set(name, c.model(name, model))
		return true
	})
	return defs
}

func (c *conversion) model(name string, model *document.Object) *document.Object {
	path := "models." + name
	out := document.FromPairs("type", "object")
	if v, ok := model.String("description"); ok {
		out.Set("description", v)
	}
	if v, ok := model.Slice("required"); ok && len(v) > 0 {
		out.Set("required", v)
	}
	if v, ok := model.String("discriminator"); ok {
		out.Set("discriminator", v)
	}

	props := document.NewObject()
	src, _ := model.Object("properties")
	src.Range(func(propName string, raw any) bool {
		prop, ok := raw.(*document.Object)
		if !ok {
			c.addIssue(SeverityWarning, path+".properties."+propName, "property is not an object; skipped")
			return true
		}
		schema := c.schema(prop, path+".properties."+propName)
		if schema == nil {
			c.addIssue(SeverityWarning, path+".properties."+propName, "property has no type; using an empty schema")
			schema = document.NewObject()
		}
		if v, ok := prop.String("description"); ok && !schema.Has("$ref") {
			schema.Set("description", v)
		}
		props.Set(propName, schema)
		return true
	})
	if props.Len() > 0 {
		out.Set("properties", props)
	}

	if model.Has("subTypes") {
		c.addIssue(SeverityInfo, path+".subTypes", "subTypes are not converted")
	}
	return out
}

// primitiveTypes maps 1.x type names to their 2.0 type and format.
var primitiveTypes = map[string][2]string{
	"integer":   {"integer", ""},
	"number":    {"number", ""},
	"string":    {"string", ""},
	"boolean":   {"boolean", ""},
	"file":      {"file", ""},
	"int":       {"integer", "int32"},
	"long":      {"integer", "int64"},
	"float":     {"number", "float"},
	"double":    {"number", "double"},
	"byte":      {"string", "byte"},
	"date":      {"string", "date"},
	"datetime":  {"string", "date-time"},
	"date-time": {"string", "date-time"},
}

// schema converts a 1.x data type (an operation, parameter, property, or
// items object) into a 2.0 schema. It returns nil for void and for objects
// that declare no type.
func (c *conversion) schema(src *document.Object, path string) *document.Object {
	if ref, ok := src.String("$ref"); ok {
		return c.ref(ref, path)
	}
	typ, ok := src.String("type")
	if !ok || typ == "" {
		return nil
	}

	switch lower := c.lower.String(typ); {
	case lower == "void":
		return nil

	case lower == "array":
		out := document.FromPairs("type", "array")
		items, _ := src.Object("items")
		itemSchema := c.schema(items, path+".items")
		if itemSchema == nil {
			c.addIssue(SeverityWarning, path+".items", "array has no item type; using an empty schema")
			itemSchema = document.NewObject()
		}
		out.Set("items", itemSchema)
		if unique, _ := src.Bool("uniqueItems"); unique {
			out.Set("uniqueItems", true)
		}
		return out

	case c.models.Has(typ):
		return c.ref(typ, path)

	default:
		prim, ok := primitiveTypes[lower]
		if !ok {
			c.addIssue(SeverityWarning, path+".type", fmt.Sprintf("unknown type %q; treating it as a model reference", typ))
			return c.ref(typ, path)
		}
		out := document.FromPairs("type", prim[0])
		format := prim[1]
		if f, ok := src.String("format"); ok && f != "" {
			format = f
		}
		if format != "" {
			out.Set("format", format)
		}
		if v, ok := src.Slice("enum"); ok {
			out.Set("enum", v)
		}
		if v, ok := src.Get("defaultValue"); ok {
			out.Set("default", v)
		} else if v, ok := src.Get("default"); ok {
			out.Set("default", v)
		}
		for _, key := range []string{"minimum", "maximum"} {
			if v, ok := src.Get(key); ok {
				out.Set(key, numeric(v))
			}
		}
		return out
	}
}

func (c *conversion) ref(name, path string) *document.Object {
	if strings.HasPrefix(name, "#/") {
		return document.FromPairs("$ref", name)
	}
	if !c.models.Has(name) {
		c.addIssue(SeverityWarning, path, fmt.Sprintf("reference to undeclared model %q", name))
	}
	return document.FromPairs("$ref", "#/definitions/"+document.EscapePointerToken(name))
}

// numeric converts the string bounds used by 1.2 into numbers.
func numeric(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return v
}
