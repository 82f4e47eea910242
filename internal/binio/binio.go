// Package binio reads little-endian scalars out of an immutable byte buffer.
// Every read is bounds checked and reports the field and offset it failed on.
package binio

import (
	"encoding/binary"
	"math"

	"github.com/qatium/epanet-go/internal/format"
)

// Reader is a read-only view over a result buffer.
type Reader struct {
	buf []byte
}

// New wraps buf. The buffer is never written to.
func New(buf []byte) Reader {
	return Reader{buf: buf}
}

// Len returns the buffer size in bytes.
func (r Reader) Len() int { return len(r.buf) }

// Check verifies that n bytes starting at off are addressable.
func (r Reader) Check(field string, off, n int) error {
	if off < 0 || n < 0 || off > len(r.buf) || n > len(r.buf)-off {
		return format.Malformed(field, off, "need %d bytes, buffer holds %d", n, len(r.buf))
	}
	return nil
}

// CheckTable verifies that count records of width bytes starting at off are
// addressable, without overflowing on hostile counts.
func (r Reader) CheckTable(field string, off, count, width int) error {
	if count < 0 || width <= 0 {
		return format.Malformed(field, off, "invalid table of %d x %d bytes", count, width)
	}
	if off < 0 || off > len(r.buf) || count > (len(r.buf)-off)/width {
		return format.Malformed(field, off, "table of %d x %d bytes exceeds buffer of %d", count, width, len(r.buf))
	}
	return nil
}

// Int32 reads a signed 32-bit integer at off.
func (r Reader) Int32(field string, off int) (int32, error) {
	if err := r.Check(field, off, format.WordBytes); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[off:])), nil
}

// Float32 reads an IEEE-754 single at off.
func (r Reader) Float32(field string, off int) (float32, error) {
	if err := r.Check(field, off, format.WordBytes); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[off:])), nil
}

// Bytes returns the n bytes at off. The slice aliases the buffer and must not
// be modified or retained past the decode.
func (r Reader) Bytes(field string, off, n int) ([]byte, error) {
	if err := r.Check(field, off, n); err != nil {
		return nil, err
	}
	return r.buf[off : off+n : off+n], nil
}

// Int32At reads without a bounds check. Callers validate the range first.
func (r Reader) Int32At(off int) int32 {
	return int32(binary.LittleEndian.Uint32(r.buf[off:]))
}

// Float32At reads without a bounds check. Callers validate the range first.
func (r Reader) Float32At(off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[off:]))
}

// Int32Table reads count consecutive int32 values starting at off.
func (r Reader) Int32Table(field string, off, count int) ([]int32, error) {
	if err := r.CheckTable(field, off, count, format.WordBytes); err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = r.Int32At(off + format.WordBytes*i)
	}
	return out, nil
}

// Float32Table reads count consecutive float32 values starting at off.
func (r Reader) Float32Table(field string, off, count int) ([]float32, error) {
	if err := r.CheckTable(field, off, count, format.WordBytes); err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = r.Float32At(off + format.WordBytes*i)
	}
	return out, nil
}
