package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/molsel/internal/conv"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression of a frame.
type Compression uint8

const (
	// CompressionNone stores payloads as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 blocks (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps "none", "lz4" or "zstd" to a Compression.
func ParseCompression(s string) (Compression, bool) {
	switch s {
	case "none", "":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	default:
		return 0, false
	}
}

var (
	// ErrCorruptFrame is returned for frames that are truncated or inconsistent.
	ErrCorruptFrame = errors.New("codec: corrupt frame")
	// ErrUnknownCompression is returned for frames with an unknown compression byte.
	ErrUnknownCompression = errors.New("codec: unknown compression")
	// ErrFrameTooLarge is returned for payloads above MaxFrameSize.
	ErrFrameTooLarge = errors.New("codec: frame too large")
)

// MaxFrameSize bounds the uncompressed payload of a frame. Headers claiming
// more are rejected before anything is allocated.
const MaxFrameSize = 64 << 20

// lz4MaxRatio is the largest expansion of an LZ4 block.
const lz4MaxRatio = 255

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) { zstdEncoderPool.Put(enc) }

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(MaxFrameSize))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) { zstdDecoderPool.Put(dec) }

// Frame: [Compression uint8][UncompressedSize uint32][StoredSize uint32][Data...]
// StoredSize == 0 marks a payload stored uncompressed.
const frameHeaderSize = 9

// compressFrame wraps data in a frame, falling back to a stored payload when
// compression saves less than 10%.
func compressFrame(data []byte, c Compression) ([]byte, error) {
	if len(data) > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrameTooLarge, err)
	}
	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	stored := len(compressed) > 0 && float64(len(compressed)) <= float64(len(data))*0.9
	payload := data
	if stored {
		payload = compressed
	}
	out := make([]byte, frameHeaderSize+len(payload))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], size)
	if stored {
		binary.LittleEndian.PutUint32(out[5:], uint32(len(compressed)))
	}
	copy(out[frameHeaderSize:], payload)
	return out, nil
}

// decompressFrame returns the payload of a frame.
func decompressFrame(frame []byte) ([]byte, error) {
	if len(frame) < frameHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptFrame, len(frame))
	}
	c := Compression(frame[0])
	size := binary.LittleEndian.Uint32(frame[1:])
	stored := binary.LittleEndian.Uint32(frame[5:])
	body := frame[frameHeaderSize:]
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: header claims %d bytes", ErrFrameTooLarge, size)
	}

	if stored == 0 {
		if uint32(len(body)) != size {
			return nil, fmt.Errorf("%w: payload size mismatch", ErrCorruptFrame)
		}
		return body, nil
	}
	if uint32(len(body)) != stored {
		return nil, fmt.Errorf("%w: compressed size mismatch", ErrCorruptFrame)
	}

	switch c {
	case CompressionLZ4:
		if uint64(size) > lz4MaxRatio*uint64(stored) {
			return nil, fmt.Errorf("%w: %d bytes cannot expand to %d", ErrCorruptFrame, stored, size)
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		decoded, err := dec.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
		}
		if uint32(len(decoded)) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
