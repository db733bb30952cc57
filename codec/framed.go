package codec

// Framed wraps a codec's output in a compression frame.
type Framed struct {
	Codec       Codec
	Compression Compression
}

// Marshal encodes v with the inner codec and frames the result.
func (f Framed) Marshal(v any) ([]byte, error) {
	b, err := f.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return compressFrame(b, f.Compression)
}

// Unmarshal decodes a frame of any compression into v.
func (f Framed) Unmarshal(data []byte, v any) error {
	b, err := decompressFrame(data)
	if err != nil {
		return err
	}
	return f.inner().Unmarshal(b, v)
}

// Name returns the inner codec name suffixed with the compression.
func (f Framed) Name() string {
	return f.inner().Name() + "+" + f.Compression.String()
}

func (f Framed) inner() Codec {
	if f.Codec == nil {
		return Default
	}
	return f.Codec
}
