// Package ident decodes the fixed-width, zero padded identifier fields of the
// output file.
package ident

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
)

// Decode returns the text of a zero padded field. The first zero byte ends
// the text; anything after it is padding. Bytes are mapped one to one onto
// code points (ISO-8859-1), so non-ASCII input never yields invalid UTF-8.
func Decode(field []byte) string {
	if n := bytes.IndexByte(field, 0); n >= 0 {
		field = field[:n]
	}
	ascii := true
	for _, b := range field {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(field)
	}
	var sb strings.Builder
	sb.Grow(len(field) * 2)
	for _, b := range field {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String()
}

// ReadTable decodes count identifiers of format.IDBytes each, starting at
// offset, in element order.
func ReadTable(r binio.Reader, field string, offset, count int) ([]string, error) {
	return ReadFixed(r, field, offset, count, format.IDBytes)
}

// ReadFixed decodes count text fields of width bytes each.
func ReadFixed(r binio.Reader, field string, offset, count, width int) ([]string, error) {
	if err := r.CheckTable(field, offset, count, width); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		raw, err := r.Bytes(field, offset+width*i, width)
		if err != nil {
			return nil, err
		}
		out[i] = Decode(raw)
	}
	return out, nil
}

// ReadString decodes a single text field of width bytes at offset.
func ReadString(r binio.Reader, field string, offset, width int) (string, error) {
	raw, err := r.Bytes(field, offset, width)
	if err != nil {
		return "", err
	}
	return Decode(raw), nil
}
