package compress

import (
	"bytes"
	"compress/gzip"
	"io"
)

var _ Compress = GZip{}

// GZip is the codec of .gz files, readable by any gzip tool.
type GZip struct {
	level int
}

func NewGZip() GZip {
	return GZip{level: gzip.BestCompression}
}

func (g GZip) Encode(data []byte) ([]byte, error) {
	return encode(data, func(w io.Writer) io.WriteCloser {
		// the level is one of the gzip constants, NewWriterLevel cannot fail
		gw, _ := gzip.NewWriterLevel(w, g.level)
		return gw
	})
}

func (g GZip) Decode(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return decode(gr)
}
