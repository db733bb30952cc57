// Package codec encodes selection expressions and other values for storage
// and transport.
//
// Framed codecs prefix every payload with its compression, so a decoder
// configured for any compression reads frames written by any other.
package codec

import (
	"fmt"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name: "go-json", optionally
// suffixed with "+lz4" or "+zstd".
func ByName(name string) (Codec, bool) {
	base, comp, framed := strings.Cut(name, "+")
	if base != "go-json" {
		return nil, false
	}
	if !framed {
		return GoJSON{}, true
	}
	c, ok := ParseCompression(comp)
	if !ok {
		return nil, false
	}
	return Framed{Codec: GoJSON{}, Compression: c}, true
}

// MustMarshal is a helper for tests and fixtures.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}
