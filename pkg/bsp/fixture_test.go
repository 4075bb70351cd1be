package bsp

import (
	"bytes"
	"encoding/binary"
	"math"
)

// builder assembles little-endian fixtures.
type builder struct {
	bytes.Buffer
}

func (b *builder) u8(v uint8) *builder {
	b.WriteByte(v)
	return b
}

func (b *builder) u16(v uint16) *builder {
	b.Write(binary.LittleEndian.AppendUint16(nil, v))
	return b
}

func (b *builder) u32(v uint32) *builder {
	b.Write(binary.LittleEndian.AppendUint32(nil, v))
	return b
}

func (b *builder) i32(v int32) *builder {
	return b.u32(uint32(v))
}

func (b *builder) u64(v uint64) *builder {
	b.Write(binary.LittleEndian.AppendUint64(nil, v))
	return b
}

func (b *builder) f32(v float32) *builder {
	return b.u32(math.Float32bits(v))
}

func (b *builder) boolean(v bool) *builder {
	if v {
		return b.i32(1)
	}
	return b.i32(0)
}

func (b *builder) str(s string) *builder {
	b.i32(int32(len(s)))
	b.WriteString(s)
	return b
}

// wstrZ writes a widened null-terminated string.
func (b *builder) wstrZ(s string) *builder {
	if s == "" {
		return b.i32(0)
	}
	b.i32(int32(len(s) + 1))
	for i := 0; i < len(s); i++ {
		b.i32(int32(s[i]))
	}
	return b.i32(0)
}

func (b *builder) vec3(x, y, z float32) *builder {
	return b.f32(x).f32(y).f32(z)
}

func (b *builder) bbox() *builder {
	return b.vec3(1, 1, 1).vec3(-1, -1, -1)
}

func (b *builder) matrix() *builder {
	return b.vec3(1, 0, 0).vec3(0, 1, 0).vec3(0, 0, 1).vec3(5, 6, 7).u64(0)
}

func (b *builder) plane(a, bb, c, d float32) *builder {
	return b.f32(a).f32(bb).f32(c).f32(d)
}

func (b *builder) rect(x, y, w, h int32) *builder {
	return b.i32(x).i32(y).i32(w).i32(h)
}

func (b *builder) rgba32(r, g, bl, a int32) *builder {
	return b.i32(r).i32(g).i32(bl).i32(a)
}

func (b *builder) rgba8(r, g, bl, a uint8) *builder {
	return b.u8(r).u8(g).u8(bl).u8(a)
}

// chunk appends a header declaring len(payload) bytes, then the payload.
func (b *builder) chunk(t ChunkType, version int32, payload []byte) *builder {
	return b.sizedChunk(t, int32(len(payload)), version, payload)
}

// sizedChunk appends a header with an explicit declared size.
func (b *builder) sizedChunk(t ChunkType, size, version int32, payload []byte) *builder {
	b.i32(int32(t)).i32(size).i32(version)
	b.Write(payload)
	return b
}

func (b *builder) reader() *Reader {
	return NewReader(bytes.NewReader(b.Bytes()))
}

// materialPayload encodes a material whose texture slots are all empty except
// slot 0, and whose matrix slots are all absent except slot 1.
func materialPayload() []byte {
	var b builder
	b.u32(0x10).u32(0xCAFE).boolean(true)
	b.rgba32(255, 128, 64, 255).rgba32(1, 2, 3, 4)
	b.f32(8).i32(2)
	b.boolean(true).i32(5).i32(6)
	b.boolean(false).i32(7).f32(0.5)
	b.boolean(true).i32(3)
	b.u32(0xBEEF).u32(9).u32(0xF)

	b.u32(0).wstrZ("wall").i32(21).i32(2).i32(1).wstrZ("mask").rgba32(0, 0, 0, 0).u32(0x1234)
	for i := 1; i < MaterialSlots; i++ {
		b.u32(uint32(i)).wstrZ("")
	}

	b.boolean(false)
	b.boolean(true).matrix()
	b.boolean(false).boolean(false).boolean(false)

	for i := 0; i < MaterialSlots; i++ {
		b.i32(int32(i * 10))
	}
	b.i32(1).f32(2.5)
	return b.Bytes()
}

func worldPayload(zones int32) []byte {
	var b builder
	b.u32(1).u8(10).u8(20).u8(30)
	b.i32(1).u32(4).bbox()
	b.i32(zones)
	b.boolean(true).boolean(false).boolean(true).boolean(false)
	return b.Bytes()
}

func (b *builder) i16(v int16) *builder {
	return b.u16(uint16(v))
}
