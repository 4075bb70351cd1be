package bsp

// Format version from which lights carry a switch layer index.
const versionLightSwitchLayer = 0x666 + 0x39

// Light is the payload of a LightObj chunk.
type Light struct {
	BaseFlags   uint32
	Type        int32
	Flags       uint32
	Radius      float32
	Colour      RGBA[uint8]
	ConeAngle   float32
	PhotonScale float32
	SwitchLayer *uint32 // nil before versionLightSwitchLayer
}

func decodeLight(r *Reader, h ChunkHeader) (*Light, error) {
	f := newFieldReader(r)
	l := &Light{
		BaseFlags:   f.u32(),
		Type:        f.i32(),
		Flags:       f.u32(),
		Radius:      f.f32(),
		Colour:      f.rgba8(),
		ConeAngle:   f.f32(),
		PhotonScale: f.f32(),
	}
	if f.ok() && h.AtLeast(versionLightSwitchLayer) {
		layer := f.u32()
		l.SwitchLayer = &layer
	}
	return l, f.wrap("light")
}
