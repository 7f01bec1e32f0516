package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/oasexample/document"
)

// Dialect identifies the description format of a document.
type Dialect int

const (
	// DialectUnknown is the zero value; DetectDialect never returns it for a
	// non-nil document.
	DialectUnknown Dialect = iota
	// DialectSwagger1 is a Swagger 1.x resource listing or API declaration,
	// identified by a "swaggerVersion" field.
	DialectSwagger1
	// DialectSwagger2 is Swagger 2.0. Any document that is neither 1.x nor
	// OpenAPI 3 is read with these rules.
	DialectSwagger2
	// DialectOAS3 is OpenAPI 3.x, identified by an "openapi" field starting
	// with "3.".
	DialectOAS3
)

var dialectNames = map[Dialect]string{
	DialectUnknown:  "unknown",
	DialectSwagger1: "swagger1",
	DialectSwagger2: "swagger2",
	DialectOAS3:     "oas3",
}

// String returns the short name of the dialect.
func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return "unknown"
}

// IsLegacy reports whether documents of this dialect must be converted
// before they can be annotated.
func (d Dialect) IsLegacy() bool {
	return d == DialectSwagger1
}

var oas3Pattern = regexp.MustCompile(`^3\.`)

// DetectDialect determines the dialect of a document and returns the
// declared version string.
//
// A "swaggerVersion" field wins over everything else. Otherwise an "openapi"
// field matching ^3\. selects OpenAPI 3, and anything else (including a
// document with no version at all) is treated as Swagger 2.0.
func DetectDialect(doc *document.Object) (Dialect, string) {
	if doc == nil {
		return DialectUnknown, ""
	}
	if v, ok := doc.Get("swaggerVersion"); ok {
		return DialectSwagger1, versionString(v)
	}
	if v, ok := doc.Get("openapi"); ok {
		version := versionString(v)
		if oas3Pattern.MatchString(version) {
			return DialectOAS3, version
		}
		return DialectSwagger2, version
	}
	return DialectSwagger2, versionString(doc.Value("swagger"))
}

// versionString renders a version field. Unquoted YAML versions such as
// 2.0 decode as numbers.
func versionString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case int:
		return strconv.Itoa(val) + ".0"
	default:
		return fmt.Sprint(val)
	}
}
