package codec

import gojson "github.com/goccy/go-json"

// GoJSON writes expressions as plain JSON using github.com/goccy/go-json.
// It is the default hand-off format and the inner codec of Framed.
type GoJSON struct{}

// Marshal encodes v as JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }

// Append appends the JSON encoding of v to dst, so a caller can prefix its
// own header without a second copy.
func (GoJSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}
