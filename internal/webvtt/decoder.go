package webvtt

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder turns raw chunks into UTF-8 text. With stream set, an incomplete
// trailing sequence is kept for the next call; a call with stream unset ends
// the input and returns whatever is left.
type Decoder interface {
	Decode(chunk []byte, stream bool) (string, error)
}

type streamDecoder struct {
	t       transform.Transformer
	pending []byte
}

// NewDecoder wraps an x/text encoding as a stream-aware Decoder.
func NewDecoder(enc encoding.Encoding) Decoder {
	return &streamDecoder{t: enc.NewDecoder()}
}

// NewUTF8Decoder decodes UTF-8 and drops a leading byte order mark.
func NewUTF8Decoder() Decoder {
	return NewDecoder(unicode.UTF8BOM)
}

// DecoderForCharset resolves a WHATWG encoding label such as "utf-8",
// "windows-1252" or "shift_jis".
func DecoderForCharset(name string) (Decoder, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" || label == "utf-8" || label == "utf8" {
		return NewUTF8Decoder(), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return NewDecoder(enc), nil
}

func (d *streamDecoder) Decode(chunk []byte, stream bool) (string, error) {
	src := make([]byte, 0, len(d.pending)+len(chunk))
	src = append(src, d.pending...)
	src = append(src, chunk...)
	d.pending = nil

	var out strings.Builder
	dst := make([]byte, 2*len(src)+64)
	atEOF := !stream
	for {
		nDst, nSrc, err := d.t.Transform(dst, src, atEOF)
		out.Write(dst[:nDst])
		src = src[nSrc:]

		switch {
		case err == nil:
		case errors.Is(err, transform.ErrShortDst):
			dst = make([]byte, 2*len(dst))
			continue
		case errors.Is(err, transform.ErrShortSrc) && stream:
			d.pending = append(d.pending, src...)
			return out.String(), nil
		default:
			d.t.Reset()
			return out.String(), fmt.Errorf("decode: %w", err)
		}

		if len(src) == 0 || (nSrc == 0 && nDst == 0) {
			break
		}
	}

	if atEOF {
		d.t.Reset()
	}
	return out.String(), nil
}
