package sampler

// primitives maps "type" or "type_format" to a representative value.
// Dates are fixed so that examples are reproducible.
var primitives = map[string]any{
	"string":           "string",
	"string_email":     "user@example.com",
	"string_date-time": "2024-01-01T00:00:00.000Z",
	"string_date":      "2024-01-01",
	"string_uuid":      "3fa85f64-5717-4562-b3fc-2c963f66afa6",
	"string_hostname":  "example.com",
	"string_ipv4":      "198.51.100.42",
	"string_ipv6":      "2001:0db8:5b96:0000:0000:426f:8e17:642a",
	"string_uri":       "https://example.com/",
	"string_byte":      "U3dhZ2dlciByb2Nrcw==",
	"number":           0,
	"number_float":     0.0,
	"number_double":    0.0,
	"integer":          0,
	"integer_int32":    0,
	"integer_int64":    0,
	"boolean":          true,
}

// Primitive looks up the representative value for a type, preferring the
// format-qualified entry. The second result is false when neither is known.
func Primitive(typ, format string) (any, bool) {
	if format != "" {
		if v, ok := primitives[typ+"_"+format]; ok {
			return v, true
		}
	}
	v, ok := primitives[typ]
	return v, ok
}
