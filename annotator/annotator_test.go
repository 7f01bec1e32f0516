package annotator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/issues"
	"github.com/erraggy/oasexample/internal/severity"
	"github.com/erraggy/oasexample/legacy"
	"github.com/erraggy/oasexample/oaserrors"
	"github.com/erraggy/oasexample/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indented renders compact JSON the way examples are serialized.
func indented(t *testing.T, compact string) string {
	t.Helper()
	v, err := document.Decode([]byte(compact))
	require.NoError(t, err)
	data, err := document.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	return string(data)
}

func compact(t *testing.T, v any) string {
	t.Helper()
	data, err := document.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func node(t *testing.T, root *document.Object, pointer string) *document.Object {
	t.Helper()
	v, err := document.ResolvePointer(root, pointer)
	require.NoError(t, err, pointer)
	obj, ok := v.(*document.Object)
	require.True(t, ok, pointer)
	return obj
}

func decode(t *testing.T, src string) *document.Object {
	t.Helper()
	obj, err := document.DecodeObject([]byte(src))
	require.NoError(t, err)
	return obj
}

func TestAnnotateSwagger2(t *testing.T) {
	res, err := New().Annotate(context.Background(), "../testdata/petstore-2.0.json")
	require.NoError(t, err)

	assert.Equal(t, parser.DialectSwagger2, res.Dialect)
	assert.Equal(t, "2.0", res.SourceVersion)
	assert.Equal(t, parser.SourceFormatJSON, res.SourceFormat)
	assert.Equal(t, 3, res.OperationCount)
	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.FailedOperations())
	assert.False(t, res.HasErrors())

	doc := res.Document
	pet := `{"id":0,"name":"doggie","tag":"string"}`

	t.Run("list operation", func(t *testing.T) {
		op := node(t, doc, "#/paths/~1pets/get")
		assert.Equal(t,
			`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"limit","type":["number"],"requierd":false},{"name":"status","type":["string"],"requierd":true}]}`,
			compact(t, op.Value("params")))
		assert.Equal(t, indented(t, "["+pet+"]"), node(t, op, "#/responses/200").Value("example"))
		assert.Equal(t, indented(t, `{"code":"0","message":"string"}`), node(t, op, "#/responses/default").Value("example"))
		assert.Equal(t, "0", node(t, op, "#/parameters/0").Value("example"))
		assert.Equal(t, `"available"`, node(t, op, "#/parameters/1").Value("example"))
	})

	t.Run("body operation", func(t *testing.T) {
		op := node(t, doc, "#/paths/~1pets/post")
		assert.Equal(t,
			`{"bodyParamsType":"object","bodyParams":[{"name":"id","type":["number"],"required":false},{"name":"name","type":["string"],"required":false},{"name":"tag","type":["string"],"required":false}],"queryParams":[]}`,
			compact(t, op.Value("params")))
		assert.Equal(t, indented(t, pet), node(t, op, "#/parameters/0").Value("example"))

		resp := node(t, op, "#/responses/201")
		assert.False(t, resp.Has("example"), "a response without shape gets no example")
	})

	t.Run("file payloads", func(t *testing.T) {
		op := node(t, doc, "#/paths/~1pets~1{petId}~1photo/put")
		assert.Equal(t, "0", node(t, op, "#/parameters/0").Value("example"))
		assert.False(t, node(t, op, "#/parameters/1").Has("example"))
		assert.False(t, node(t, op, "#/responses/200").Has("example"))
		assert.Equal(t, `{"bodyParamsType":"object","bodyParams":[],"queryParams":[]}`, compact(t, op.Value("params")))
	})

	assert.Equal(t, 6, res.ExampleCount)
	assert.Positive(t, res.SamplerStats.Hits, "the Pet definition is shared")
}

func TestAnnotateOAS3(t *testing.T) {
	res, err := New().Annotate(context.Background(), "../testdata/petstore-3.0.yaml")
	require.NoError(t, err)

	assert.Equal(t, parser.DialectOAS3, res.Dialect)
	assert.Equal(t, "3.0.3", res.SourceVersion)
	assert.Equal(t, parser.SourceFormatYAML, res.SourceFormat)
	assert.Equal(t, 3, res.OperationCount)
	assert.Empty(t, res.Issues)

	doc := res.Document
	// Pet -> Owner -> pets -> Pet is cut with an empty object.
	pet := `{"id":0,"name":"string","tag":"string","owner":{"email":"user@example.com","pets":[{}]}}`

	list := node(t, doc, "#/paths/~1pets/get")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"limit","type":["number"],"required":false}]}`,
		compact(t, list.Value("params")))
	assert.Equal(t, indented(t, "["+pet+"]"), node(t, list, "#/responses/200").Value("example"))
	assert.Equal(t, indented(t, `{"code":"0","message":"string"}`), node(t, list, "#/responses/default").Value("example"))
	assert.Equal(t, "0", node(t, list, "#/parameters/0").Value("example"))

	create := node(t, doc, "#/paths/~1pets/post")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[{"name":"id","type":["number"],"required":true},{"name":"name","type":["string"],"required":true},{"name":"tag","type":["string"],"required":false},{"name":"owner","type":["object"],"required":false}],"queryParams":[]}`,
		compact(t, create.Value("params")))
	resp := node(t, create, "#/responses/201")
	v, ok := resp.Get("example")
	assert.True(t, ok)
	assert.Nil(t, v, "a response without content gets a null example")

	show := node(t, doc, "#/paths/~1pets~1{petId}/get")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"petId","type":["string"],"required":true}]}`,
		compact(t, show.Value("params")))
	assert.Equal(t, indented(t, pet), node(t, show, "#/responses/200").Value("example"))
	assert.Equal(t, `"string"`, node(t, show, "#/parameters/0").Value("example"))

	t.Run("components are not annotated", func(t *testing.T) {
		assert.False(t, node(t, doc, "#/components/schemas/Pet").Has("example"))
	})
}

func TestAnnotateIsDeterministic(t *testing.T) {
	first, err := New().Annotate(context.Background(), "../testdata/petstore-3.0.yaml")
	require.NoError(t, err)
	second, err := New().Annotate(context.Background(), "../testdata/petstore-3.0.yaml")
	require.NoError(t, err)
	assert.Equal(t, compact(t, first.Document), compact(t, second.Document))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestAnnotateCopiesOfOneSource(t *testing.T) {
	source := decode(t, `{
		"swagger": "2.0",
		"paths": {"/pets": {"get": {
			"parameters": [{"name": "limit", "in": "query", "type": "integer"}],
			"responses": {"200": {"description": "ok", "schema": {"type": "string"}}}
		}}}
	}`)

	var outputs []string
	for range 2 {
		doc, ok := document.DeepCopy(source).(*document.Object)
		require.True(t, ok)
		_, err := New().AnnotateDocument(context.Background(), doc, "")
		require.NoError(t, err)
		assert.Equal(t, "0", node(t, doc, "#/paths/~1pets/get/parameters/0").Value("example"))
		outputs = append(outputs, compact(t, doc))
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.False(t, node(t, source, "#/paths/~1pets/get").Has("params"))
}

func legacyServer(t *testing.T, failing string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	files := map[string]string{
		"/api-docs":           "../testdata/swagger12/api-docs.json",
		"/api-docs/pet.json":  "../testdata/swagger12/pet.json",
		"/api-docs/user.json": "../testdata/swagger12/user.json",
	}
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		file, ok := files[r.URL.Path]
		if !ok || r.URL.Path == failing {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func assertLegacyPetstore(t *testing.T, res *AnnotationResult) {
	t.Helper()
	assert.Equal(t, parser.DialectSwagger1, res.Dialect)
	assert.Equal(t, "1.2", res.SourceVersion)
	assert.Equal(t, 2, res.DeclarationCount)
	assert.Equal(t, 4, res.OperationCount)
	assert.False(t, res.HasErrors(), "%v", res.Issues)

	doc := res.Document
	assert.Equal(t, "2.0", doc.Value("swagger"))

	op := node(t, doc, "#/paths/~1pet~1findByStatus/get")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"status","type":["string"],"requierd":true}]}`,
		compact(t, op.Value("params")))
	assert.Equal(t,
		indented(t, `[{"id":0,"name":"string","tags":[{"id":0,"name":"string"}],"status":"available"}]`),
		node(t, op, "#/responses/200").Value("example"))
	assert.False(t, node(t, op, "#/responses/400").Has("example"))
	assert.Equal(t, `"available"`, node(t, op, "#/parameters/0").Value("example"))

	add := node(t, doc, "#/paths/~1pet/post")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[{"name":"id","type":["number"],"required":false},{"name":"name","type":["string"],"required":false},{"name":"tags","type":["array"],"required":false},{"name":"status","type":["string"],"required":false}],"queryParams":[]}`,
		compact(t, add.Value("params")))

	login := node(t, doc, "#/paths/~1user~1login/get")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"username","type":["string"],"requierd":true}]}`,
		compact(t, login.Value("params")))
	assert.Equal(t, `"string"`, node(t, login, "#/responses/200").Value("example"))
}

func TestAnnotateLegacyOverHTTP(t *testing.T) {
	server, hits := legacyServer(t, "")

	res, err := New().Annotate(context.Background(), server.URL+"/api-docs")
	require.NoError(t, err)
	assertLegacyPetstore(t, res)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, server.URL+"/api-docs", res.SourcePath)
}

func TestAnnotateLegacyFromFile(t *testing.T) {
	res, err := AnnotateWithOptions(context.Background(), WithFilePath("../testdata/swagger12/api-docs.json"))
	require.NoError(t, err)
	assertLegacyPetstore(t, res)
}

func TestAnnotateLegacyFetchFailure(t *testing.T) {
	server, _ := legacyServer(t, "/api-docs/user.json")

	res, err := New().Annotate(context.Background(), server.URL+"/api-docs")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, oaserrors.ErrRetrieval)

	var re *oaserrors.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, server.URL+"/api-docs/user.json", re.Location)
}

// mapFetcher serves documents from memory.
type mapFetcher struct {
	mu      sync.Mutex
	docs    map[string]string
	fetched []string
	err     error
}

func (f *mapFetcher) Fetch(_ context.Context, location string) (*parser.ParseResult, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, location)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	src, ok := f.docs[location]
	if !ok {
		return nil, &oaserrors.RetrievalError{Location: location, StatusCode: http.StatusNotFound}
	}
	return parser.New().ParseBytes([]byte(src))
}

func TestAnnotateLegacyWithFetcher(t *testing.T) {
	listing := `{"swaggerVersion": "1.2", "apis": [{"path": "/store"}]}`
	store := `{"swaggerVersion": "1.2", "resourcePath": "/store", "apis": [{"path": "/orders", "operations": [
		{"method": "GET", "nickname": "listOrders", "type": "array", "items": {"type": "Order"}}
	]}], "models": {"Order": {"id": "Order", "properties": {"id": {"type": "long"}, "code": {"type": "int"}}}}}`

	t.Run("repairs item references before converting", func(t *testing.T) {
		f := &mapFetcher{docs: map[string]string{"https://api.example.com/docs/store": store}}
		a := New()
		a.Fetcher = f
		res, err := a.AnnotateDocument(context.Background(), decode(t, listing), "https://api.example.com/docs")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://api.example.com/docs/store"}, f.fetched)

		op := node(t, res.Document, "#/paths/~1orders/get")
		assert.Equal(t, indented(t, `[{"id":0,"code":"0"}]`), node(t, op, "#/responses/200").Value("example"))
	})

	t.Run("parse errors become retrieval errors", func(t *testing.T) {
		f := &mapFetcher{err: &oaserrors.ParseError{Message: "bad"}}
		a := New()
		a.Fetcher = f
		_, err := a.AnnotateDocument(context.Background(), decode(t, listing), "https://api.example.com/docs")
		var re *oaserrors.RetrievalError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "https://api.example.com/docs/store", re.Location)
		assert.ErrorIs(t, err, oaserrors.ErrParse)
	})

	t.Run("entry without path", func(t *testing.T) {
		a := New()
		a.Fetcher = &mapFetcher{}
		_, err := a.AnnotateDocument(context.Background(), decode(t, `{"swaggerVersion": "1.2", "apis": [{"description": "x"}]}`), "docs")
		var ce *oaserrors.ConversionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "apis[0].path", ce.Path)
	})

	t.Run("bounded concurrency", func(t *testing.T) {
		docs := make(map[string]string)
		var entries []string
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			entries = append(entries, `{"path": "/`+name+`"}`)
			docs["https://h/"+name] = `{"swaggerVersion": "1.2", "resourcePath": "/` + name + `", "apis": []}`
		}
		f := &mapFetcher{docs: docs}
		a := New()
		a.Fetcher = f
		a.MaxConcurrency = 2
		res, err := a.AnnotateDocument(context.Background(),
			decode(t, `{"swaggerVersion": "1.2", "apis": [`+strings.Join(entries, ",")+`]}`), "https://h/")
		require.NoError(t, err)
		assert.Equal(t, 5, res.DeclarationCount)
		assert.Len(t, f.fetched, 5)
		assert.Zero(t, res.OperationCount)
	})
}

// stubConverter returns a fixed document or error.
type stubConverter struct {
	doc *document.Object
	err error
}

func (c stubConverter) Convert(context.Context, *document.Object, []*document.Object) (*document.Object, error) {
	return c.doc, c.err
}

func TestAnnotateLegacyConversionFailures(t *testing.T) {
	listing := `{"swaggerVersion": "1.2", "apis": []}`
	tests := []struct {
		name string
		conv legacy.Converter
	}{
		{name: "converter error", conv: stubConverter{err: errors.New("boom")}},
		{name: "no document", conv: stubConverter{}},
		{name: "still legacy", conv: stubConverter{doc: document.FromPairs("swaggerVersion", "1.2")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			a.Converter = tt.conv
			res, err := a.AnnotateDocument(context.Background(), decode(t, listing), "docs.json")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, oaserrors.ErrConversion)
		})
	}

	t.Run("converted document is annotated", func(t *testing.T) {
		a := New()
		a.Converter = stubConverter{doc: decode(t, `{"swagger": "2.0", "paths": {"/a": {"get": {"responses": {"200": {"schema": {"type": "boolean"}}}}}}}`)}
		res, err := a.AnnotateDocument(context.Background(), decode(t, listing), "docs.json")
		require.NoError(t, err)
		assert.Equal(t, parser.DialectSwagger1, res.Dialect)
		assert.Equal(t, "true", node(t, res.Document, "#/paths/~1a/get/responses/200").Value("example"))
	})
}

func TestAnnotateContainsOperationFailures(t *testing.T) {
	doc := decode(t, `{
		"openapi": "3.1.0",
		"paths": {
			"/broken": {
				"summary": "not an operation",
				"get": {
					"operationId": "broken",
					"parameters": [{"name": "q", "in": "query"}],
					"responses": {
						"200": {"content": "text/plain"},
						"201": {"content": {"application/json": "nope"}},
						"202": "bad",
						"204": {"content": {"application/json": {"schema": {"type": "string"}}}}
					}
				}
			},
			"/ok": {
				"post": {
					"parameters": [{"name": "q", "in": "query", "schema": {"type": "integer"}}],
					"responses": {"200": {"content": {"application/json": {"schema": {"type": "number", "format": "float"}}}}}
				}
			}
		}
	}`)

	res, err := New().AnnotateDocument(context.Background(), doc, "")
	require.NoError(t, err)
	require.Len(t, res.Operations, 2)

	broken := res.Operations[0]
	assert.Equal(t, "/broken", broken.Path)
	assert.Equal(t, "get", broken.Method)
	assert.Equal(t, "broken", broken.OperationID)
	assert.Nil(t, broken.Params)
	assert.ErrorIs(t, broken.ParamsErr, oaserrors.ErrParameterExtraction)
	require.Len(t, broken.ExampleErrs, 3)
	for _, e := range broken.ExampleErrs {
		assert.ErrorIs(t, e, oaserrors.ErrSchemaInference)
	}
	assert.False(t, broken.OK())

	op := node(t, doc, "#/paths/~1broken/get")
	assert.False(t, op.Has("params"))
	for _, code := range []string{"200", "201"} {
		v, ok := node(t, op, "#/responses/"+code).Get("example")
		assert.True(t, ok, code)
		assert.Nil(t, v, code)
	}
	assert.Equal(t, `"string"`, node(t, op, "#/responses/204").Value("example"))
	assert.False(t, node(t, op, "#/parameters/0").Has("example"))

	ok := res.Operations[1]
	assert.True(t, ok.OK())
	require.NotNil(t, ok.Params)
	assert.Equal(t, "0", node(t, doc, "#/paths/~1ok/post/parameters/0").Value("example"))
	assert.Equal(t, "0", node(t, doc, "#/paths/~1ok/post/responses/200").Value("example"))

	counts := issues.Count(res.Issues)
	assert.Equal(t, 1, counts.Error)
	assert.Equal(t, 3, counts.Warning)
	assert.True(t, res.HasErrors())
	assert.Len(t, res.FailedOperations(), 1)

	first := res.Issues[0]
	assert.Equal(t, severity.SeverityError, first.Severity)
	assert.Equal(t, "paths./broken.get.params", first.Path)
	require.NotNil(t, first.Operation)
	assert.Equal(t, "broken", first.Operation.OperationID)
	assert.Equal(t, "paths./broken.get.responses.200.content", res.Issues[1].Path)
	assert.Equal(t, "paths./broken.get.responses.201.content.application/json", res.Issues[2].Path)
	assert.Equal(t, "paths./broken.get.responses.202", res.Issues[3].Path)
}

func TestAnnotateRefs(t *testing.T) {
	doc := decode(t, `{
		"swagger": "2.0",
		"paths": {
			"/a": {"get": {
				"parameters": [{"$ref": "#/parameters/Limit"}],
				"responses": {"404": {"$ref": "#/responses/NotFound"}, "200": {"schema": {"$ref": "Item"}}}
			}}
		},
		"parameters": {"Limit": {"name": "limit", "in": "query", "type": "integer", "required": true}},
		"responses": {"NotFound": {"description": "missing", "schema": {"$ref": "#/definitions/Error"}}},
		"definitions": {
			"Error": {"properties": {"message": {"type": "string"}}},
			"Item": {"type": "object", "properties": {"next": {"$ref": "#/definitions/Item"}, "external": {"$ref": "other.json#/Thing"}}}
		}
	}`)

	res, err := New().AnnotateDocument(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Empty(t, res.Issues)

	op := node(t, doc, "#/paths/~1a/get")
	assert.Equal(t,
		`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"limit","type":["number"],"requierd":true}]}`,
		compact(t, op.Value("params")))

	param := node(t, op, "#/parameters/0")
	assert.Equal(t, "0", param.Value("example"))
	assert.Equal(t, []string{"$ref", "example"}, param.Keys())
	assert.Equal(t, indented(t, `{"message":"string"}`), node(t, op, "#/responses/404").Value("example"))
	assert.Equal(t, indented(t, `{"next":{}}`), node(t, op, "#/responses/200").Value("example"))

	assert.False(t, node(t, doc, "#/parameters/Limit").Has("example"))
	assert.False(t, node(t, doc, "#/responses/NotFound").Has("example"))
}

func TestAnnotateCorrectRequiredKey(t *testing.T) {
	pr, err := parser.New().Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)

	res, err := AnnotateWithOptions(context.Background(), WithParsed(pr), WithCorrectRequiredKey(true))
	require.NoError(t, err)
	assert.Equal(t, "../testdata/petstore-2.0.json", res.SourcePath)

	params := node(t, res.Document, "#/paths/~1pets/get/params")
	assert.Equal(t,
		`[{"name":"limit","type":["number"],"required":false},{"name":"status","type":["string"],"required":true}]`,
		compact(t, params.Value("queryParams")))
}

func TestAnnotateWithOptionsErrors(t *testing.T) {
	pr, err := parser.New().ParseBytes([]byte(`{"swagger": "2.0", "paths": {}}`))
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "no input", opts: nil},
		{name: "two inputs", opts: []Option{WithFilePath("a.yaml"), WithParsed(pr)}},
		{name: "empty path", opts: []Option{WithFilePath("")}},
		{name: "nil parsed", opts: []Option{WithParsed(nil)}},
		{name: "negative depth", opts: []Option{WithParsed(pr), WithMaxDepth(-1)}},
		{name: "negative concurrency", opts: []Option{WithParsed(pr), WithMaxConcurrency(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := AnnotateWithOptions(context.Background(), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Contains(t, err.Error(), "annotator: invalid options")
		})
	}

	t.Run("config errors are typed", func(t *testing.T) {
		_, err := AnnotateWithOptions(context.Background(), WithParsed(pr), WithMaxConcurrency(-1))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestAnnotateInvalidInput(t *testing.T) {
	_, err := New().AnnotateDocument(context.Background(), nil, "")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = New().AnnotateParsed(context.Background(), &parser.ParseResult{})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = New().Annotate(context.Background(), "../testdata/missing.json")
	assert.ErrorIs(t, err, oaserrors.ErrRetrieval)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().AnnotateDocument(ctx, decode(t, `{"swagger": "2.0", "paths": {"/a": {}}}`), "")
	assert.ErrorIs(t, err, context.Canceled)

	res, err := New().AnnotateDocument(context.Background(), decode(t, `{"swagger": "2.0"}`), "")
	require.NoError(t, err)
	assert.Zero(t, res.OperationCount)
}

func TestAnnotateLogsRunID(t *testing.T) {
	var buf strings.Builder
	a := New()
	a.Logger = parser.NewTextLogger(&buf, -4)
	res, err := a.Annotate(context.Background(), "../testdata/petstore-2.0.json")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run_id="+res.RunID)
	assert.Contains(t, buf.String(), "annotated document")
}
