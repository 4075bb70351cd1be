package bsp

import (
	"github.com/pkg/errors"
)

// Texture is an uncompressed texture with 32-bit channels.
type Texture struct {
	Name     string
	MaskName string
	Width    int32
	Height   int32
	Filter   int32
	Address  int32
	Format   int32
	Border   RGBA[int32]
	Pixels   []RGBA[int32] // Width*Height, row major
}

// TextureList is the payload of a Textures chunk.
type TextureList struct {
	Textures []Texture
}

func decodeTexture(r *Reader) (Texture, error) {
	f := newFieldReader(r)
	t := Texture{
		Name:     f.wideStrZ(),
		MaskName: f.wideStrZ(),
		Width:    f.i32(),
		Height:   f.i32(),
		Filter:   f.i32(),
		Address:  f.i32(),
		Format:   f.i32(),
		Border:   f.rgba32(),
	}
	if f.ok() && (t.Width < 0 || t.Height < 0) {
		f.fail(negativeCount("texture dimension", int64(min(t.Width, t.Height))))
	}
	if f.ok() {
		t.Pixels = array(f, int(t.Width)*int(t.Height), ReadRGBA32)
	}
	if f.err != nil {
		return t, errors.Wrapf(f.err, "texture %q", t.Name)
	}
	return t, nil
}

func decodeTextureList(r *Reader) (*TextureList, error) {
	textures, err := ReadSequence(r, decodeTexture)
	if err != nil {
		return nil, errors.Wrap(err, "textures")
	}
	return &TextureList{Textures: textures}, nil
}
