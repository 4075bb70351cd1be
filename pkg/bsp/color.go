package bsp

// Channel is the storage type of a color component. Some records store one
// byte per channel, others widen each channel to an int32.
type Channel interface {
	~uint8 | ~int32
}

// RGB is a color without alpha.
type RGB[T Channel] struct {
	R, G, B T
}

// RGBA returns the color with a zero alpha channel.
func (c RGB[T]) RGBA() RGBA[T] {
	return RGBA[T]{R: c.R, G: c.G, B: c.B}
}

// RGBA is a color with alpha.
type RGBA[T Channel] struct {
	R, G, B, A T
}

// ReadRGB8 decodes three byte channels.
func ReadRGB8(r *Reader) (RGB[uint8], error) {
	f := newFieldReader(r)
	c := RGB[uint8]{R: f.u8(), G: f.u8(), B: f.u8()}
	return c, f.err
}

// ReadRGBA8 decodes four byte channels.
func ReadRGBA8(r *Reader) (RGBA[uint8], error) {
	f := newFieldReader(r)
	c := RGBA[uint8]{R: f.u8(), G: f.u8(), B: f.u8(), A: f.u8()}
	return c, f.err
}

// ReadRGBA32 decodes four int32 channels.
func ReadRGBA32(r *Reader) (RGBA[int32], error) {
	f := newFieldReader(r)
	c := RGBA[int32]{R: f.i32(), G: f.i32(), B: f.i32(), A: f.i32()}
	return c, f.err
}
