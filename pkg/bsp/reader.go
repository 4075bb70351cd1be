package bsp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/Faultbox/spooky-bsp/pkg/encoding"
)

// Reader decodes little-endian primitives from a byte stream and tracks how
// many bytes have been consumed.
type Reader struct {
	br  *bufio.Reader
	pos int64
	buf [8]byte
}

// NewReader returns a Reader positioned at offset 0 of r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.pos
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	r.pos += int64(n)
	return n, err
}

// atEOF reports whether the stream has no more bytes, without consuming any.
func (r *Reader) atEOF() (bool, error) {
	_, err := r.br.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// ReadFull fills p. Running out of data is reported as ErrTruncated.
func (r *Reader) ReadFull(p []byte) error {
	start := r.pos
	n, err := io.ReadFull(r.br, p)
	r.pos += int64(n)
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrTruncated, len(p), start, n)
	}
	return errors.Wrapf(err, "reading %d bytes at offset %d", len(p), start)
}

func (r *Reader) fill(n int) ([]byte, error) {
	b := r.buf[:n]
	if err := r.ReadFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads a little-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads a little-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a little-endian IEEE 754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a little-endian IEEE 754 float64.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool reads a 32-bit boolean. Any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadInt32()
	return v != 0, err
}

// ReadChar reads a single-byte character.
func (r *Reader) ReadChar() (rune, error) {
	v, err := r.ReadUint8()
	return rune(v), err
}

// ReadCount reads a 32-bit signed element count, rejecting negative values.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, negativeCount("count", int64(n))
	}
	return int(n), nil
}

// ReadString reads a count-prefixed string of 1-byte characters.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadCount()
	if err != nil {
		return "", err
	}
	b, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	return encoding.Latin1ToUTF8(b), nil
}

// ReadFixedString reads exactly n 1-byte characters with no count prefix.
// Characters from the first null on are dropped.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	return encoding.FixedStringToUTF8(b), nil
}

// readBytes reads n raw bytes without trusting n for the allocation size.
func (r *Reader) readBytes(n int) ([]byte, error) {
	if n <= maxPrealloc {
		b := make([]byte, n)
		return b, r.ReadFull(b)
	}
	var buf bytes.Buffer
	start := r.pos
	copied, err := io.CopyN(&buf, r.br, int64(n))
	r.pos += copied
	if err == io.EOF {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrTruncated, n, start, copied)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %d bytes at offset %d", n, start)
	}
	return buf.Bytes(), nil
}

// ReadWideString reads a count-prefixed string stored with 4 bytes per
// character. Only the low byte of each slot is kept.
func (r *Reader) ReadWideString() (string, error) {
	n, err := r.ReadCount()
	if err != nil {
		return "", err
	}
	return r.readWideChars(n)
}

// ReadWideStringZ reads a widened string whose count includes a trailing
// null terminator. The terminator must be zero and is not returned.
func (r *Reader) ReadWideStringZ() (string, error) {
	n, err := r.ReadCount()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	s, err := r.readWideChars(n - 1)
	if err != nil {
		return "", err
	}
	term, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if term != 0 {
		return "", fmt.Errorf("%w: got %d", ErrBadTerminator, term)
	}
	return s, nil
}

func (r *Reader) readWideChars(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	b := make([]byte, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := r.ReadInt32()
		if err != nil {
			return "", err
		}
		b = append(b, byte(v))
	}
	return encoding.Latin1ToUTF8(b), nil
}
