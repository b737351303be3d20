package checkpoint

import (
	"fmt"
	"github.com/klauspost/compress/zstd"
	"repopulse/internal/structures"
)

const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// NoCompression keeps the checkpoint as plain JSON.
type NoCompression struct{}

func (NoCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (NoCompression) Decompress(val []byte) ([]byte, error) { return val, nil }
func (NoCompression) Close()                                {}

func NewCompressor(conf *structures.Config) (CompressorInterface, error) {
	switch conf.Persistence.Compression {
	case CompressionZstd:
		return NewZstdCompressor()
	case CompressionNone, "":
		return NoCompression{}, nil
	default:
		return nil, fmt.Errorf("unknown checkpoint compression %q", conf.Persistence.Compression)
	}
}
