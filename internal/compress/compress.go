// Package compress holds the codecs the flat file store can wrap its
// content with.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownCodec = errors.New("unknown compression codec")

// Compress encodes and decodes a whole payload.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// New returns the codec registered under name. An empty name means no compression.
func New(name string) (Compress, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "nop":
		return NewNop(), nil
	case "gzip", "gz":
		return NewGZip(), nil
	case "brotli", "br":
		return NewBrotli(), nil
	case "lz4":
		return NewLZ4(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
}

var _ Compress = Nop{}

// Nop stores the payload as is.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}

// encode streams data through the writer built by wrap
func encode(data []byte, wrap func(w io.Writer) io.WriteCloser) ([]byte, error) {
	var buf bytes.Buffer
	w := wrap(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decode drains r
func decode(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
