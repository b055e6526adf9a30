package compress

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

var _ Compress = Brotli{}

// Brotli trades encoding speed for the smallest files.
type Brotli struct {
	level int
}

func NewBrotli() Brotli {
	return Brotli{level: brotli.DefaultCompression}
}

func (b Brotli) Encode(data []byte) ([]byte, error) {
	return encode(data, func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, b.level)
	})
}

func (b Brotli) Decode(data []byte) ([]byte, error) {
	return decode(brotli.NewReader(bytes.NewReader(data)))
}
