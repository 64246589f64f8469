package splash

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

func mustNewEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var encoderPool = sync.Pool{
	New: func() any {
		return mustNewEncoder()
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		return mustNewDecoder()
	},
}

func compress(data []byte) []byte {
	enc := encoderPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	encoderPool.Put(enc)
	return out
}

func decompress(data []byte) ([]byte, error) {
	dec := decoderPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	decoderPool.Put(dec)
	return out, err
}
