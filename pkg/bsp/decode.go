package bsp

import (
	"github.com/pkg/errors"
)

// maxPrealloc caps slice capacity reserved from an on-wire count, so a corrupt
// count fails on truncation instead of on allocation.
const maxPrealloc = 4096

// DecodeFunc decodes one value of type T from r. Method expressions such as
// (*Reader).ReadUint32 satisfy it directly; decoders that need context are
// adapted with a closure.
type DecodeFunc[T any] func(r *Reader) (T, error)

// ReadOptional reads a 32-bit presence flag followed by a T when the flag is
// non-zero. An absent value is returned as nil.
func ReadOptional[T any](r *Reader, decode DecodeFunc[T]) (*T, error) {
	present, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadFixed fills dst with len(dst) consecutive values. There is no count
// prefix. On failure the contents of dst are unspecified.
func ReadFixed[T any](r *Reader, dst []T, decode DecodeFunc[T]) error {
	for i := range dst {
		v, err := decode(r)
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		dst[i] = v
	}
	return nil
}

// ReadArray reads n consecutive values whose count was decoded elsewhere.
func ReadArray[T any](r *Reader, n int, decode DecodeFunc[T]) ([]T, error) {
	if n < 0 {
		return nil, negativeCount("array length", int64(n))
	}
	out := make([]T, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadSequence reads a 32-bit signed count followed by that many values.
// A negative count fails before any element is decoded.
func ReadSequence[T any](r *Reader, decode DecodeFunc[T]) ([]T, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	return ReadArray(r, n, decode)
}

// fieldReader decodes a run of fields in declaration order and keeps the
// first error. Once an error is recorded every further read is a no-op that
// yields the zero value, so a record can be decoded as one struct literal and
// checked once at the end.
type fieldReader struct {
	r   *Reader
	err error
}

func newFieldReader(r *Reader) *fieldReader {
	return &fieldReader{r: r}
}

// ok reports whether no error has been recorded yet.
func (f *fieldReader) ok() bool {
	return f.err == nil
}

// fail records err unless an earlier error exists.
func (f *fieldReader) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// wrap annotates the recorded error, if any, with the name of the record.
func (f *fieldReader) wrap(what string) error {
	if f.err == nil {
		return nil
	}
	return errors.Wrap(f.err, what)
}

func (f *fieldReader) u8() uint8              { return field(f, (*Reader).ReadUint8) }
func (f *fieldReader) u16() uint16            { return field(f, (*Reader).ReadUint16) }
func (f *fieldReader) i16() int16             { return field(f, (*Reader).ReadInt16) }
func (f *fieldReader) u32() uint32            { return field(f, (*Reader).ReadUint32) }
func (f *fieldReader) i32() int32             { return field(f, (*Reader).ReadInt32) }
func (f *fieldReader) u64() uint64            { return field(f, (*Reader).ReadUint64) }
func (f *fieldReader) f32() float32           { return field(f, (*Reader).ReadFloat32) }
func (f *fieldReader) boolean() bool          { return field(f, (*Reader).ReadBool) }
func (f *fieldReader) count() int             { return field(f, (*Reader).ReadCount) }
func (f *fieldReader) str() string            { return field(f, (*Reader).ReadString) }
func (f *fieldReader) wideStrZ() string       { return field(f, (*Reader).ReadWideStringZ) }
func (f *fieldReader) vec3() Vector3          { return field(f, ReadVector3) }
func (f *fieldReader) matrix() Matrix         { return field(f, ReadMatrix) }
func (f *fieldReader) plane() Plane           { return field(f, ReadPlane) }
func (f *fieldReader) qplane() QuantizedPlane { return field(f, ReadQuantizedPlane) }
func (f *fieldReader) rect() Rectangle        { return field(f, ReadRectangle) }
func (f *fieldReader) bbox() BoundingBox      { return field(f, ReadBoundingBox) }
func (f *fieldReader) rgba8() RGBA[uint8]     { return field(f, ReadRGBA8) }
func (f *fieldReader) rgba32() RGBA[int32]    { return field(f, ReadRGBA32) }

// field decodes one value through f, or returns the zero value if f already
// failed.
func field[T any](f *fieldReader, decode DecodeFunc[T]) T {
	var zero T
	if f.err != nil {
		return zero
	}
	v, err := decode(f.r)
	if err != nil {
		f.err = err
		return zero
	}
	return v
}

func optional[T any](f *fieldReader, decode DecodeFunc[T]) *T {
	if f.err != nil {
		return nil
	}
	v, err := ReadOptional(f.r, decode)
	f.fail(err)
	return v
}

func sequence[T any](f *fieldReader, decode DecodeFunc[T]) []T {
	if f.err != nil {
		return nil
	}
	v, err := ReadSequence(f.r, decode)
	f.fail(err)
	return v
}

func array[T any](f *fieldReader, n int, decode DecodeFunc[T]) []T {
	if f.err != nil {
		return nil
	}
	v, err := ReadArray(f.r, n, decode)
	f.fail(err)
	return v
}

func fixed[T any](f *fieldReader, dst []T, decode DecodeFunc[T]) {
	if f.err != nil {
		return
	}
	f.fail(ReadFixed(f.r, dst, decode))
}
