package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

var _ Compress = LZ4{}

// LZ4 uses the lz4 frame format, the fastest of the codecs.
type LZ4 struct{}

func NewLZ4() LZ4 {
	return LZ4{}
}

func (LZ4) Encode(data []byte) ([]byte, error) {
	return encode(data, func(w io.Writer) io.WriteCloser {
		return lz4.NewWriter(w)
	})
}

func (LZ4) Decode(data []byte) ([]byte, error) {
	return decode(lz4.NewReader(bytes.NewReader(data)))
}
