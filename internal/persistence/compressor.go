package persistence

import (
	"fmt"
	"nodelete/internal/persistence/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotSize bounds how far a snapshot file may expand when decoded.
const maxSnapshotSize = 1 << 30

var _ interfaces.CompressorInterface = (*ZstdCodec)(nil)

// ZstdCodec packs snapshot files. Snapshots are written every few seconds at
// most, so the encoder favours ratio over speed.
type ZstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxSnapshotSize))
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCodec{enc: enc, dec: dec}, nil
}

func (c *ZstdCodec) Compress(plain []byte) ([]byte, error) {
	return c.enc.EncodeAll(plain, nil), nil
}

func (c *ZstdCodec) Decompress(packed []byte) ([]byte, error) {
	plain, err := c.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return plain, nil
}

func (c *ZstdCodec) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}
