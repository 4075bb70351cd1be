package bsp

import (
	"github.com/pkg/errors"
)

// Format version from which zones carry a zone-top index.
const versionZoneTop = 0x666 + 0x3C

// World is the payload of a World chunk. Its zone count sizes the zone list of
// the Zones chunk that follows it.
type World struct {
	Flags            uint32
	Ambient          RGBA[uint8] // stored as RGB, alpha is always 0
	Floors           []Floor
	ZoneCount        int32
	HaveOcclusionBSP bool
	HaveNulls        bool
	HaveWaypoints    bool
	HaveMesh         bool
}

// Floor is one floor of a world.
type Floor struct {
	OcclusionBSP uint32
	GhostCamera  BoundingBox
}

// Zones is the payload of a Zones chunk.
type Zones struct {
	OctantConnections []uint32
	Zones             []Zone
}

// Zone is one zone of a world.
type Zone struct {
	Bounds     BoundingBox
	Hash       uint32
	NGon       uint32
	Spline     uint32
	Clump      uint32
	FloorFlags uint32
	ZoneTop    *uint32 // nil before versionZoneTop
}

func decodeFloor(r *Reader) (Floor, error) {
	f := newFieldReader(r)
	return Floor{OcclusionBSP: f.u32(), GhostCamera: f.bbox()}, f.err
}

func decodeWorld(r *Reader) (*World, error) {
	f := newFieldReader(r)
	w := &World{
		Flags:            f.u32(),
		Ambient:          field(f, ReadRGB8).RGBA(),
		Floors:           sequence(f, decodeFloor),
		ZoneCount:        f.i32(),
		HaveOcclusionBSP: f.boolean(),
		HaveNulls:        f.boolean(),
		HaveWaypoints:    f.boolean(),
		HaveMesh:         f.boolean(),
	}
	return w, f.wrap("world")
}

func zoneDecoder(h ChunkHeader) DecodeFunc[Zone] {
	return func(r *Reader) (Zone, error) {
		f := newFieldReader(r)
		z := Zone{
			Bounds:     f.bbox(),
			Hash:       f.u32(),
			NGon:       f.u32(),
			Spline:     f.u32(),
			Clump:      f.u32(),
			FloorFlags: f.u32(),
		}
		if f.ok() && h.AtLeast(versionZoneTop) {
			top := f.u32()
			z.ZoneTop = &top
		}
		return z, f.err
	}
}

// decodeZones reads a Zones chunk. The number of zones is taken from world,
// which must be the last World chunk decoded before it.
func decodeZones(r *Reader, h ChunkHeader, world *World) (*Zones, error) {
	if world == nil {
		return nil, ErrMissingWorld
	}
	f := newFieldReader(r)
	z := &Zones{OctantConnections: sequence(f, (*Reader).ReadUint32)}
	z.Zones = array(f, int(world.ZoneCount), zoneDecoder(h))
	if f.err != nil {
		return nil, errors.Wrap(f.err, "zones")
	}
	return z, nil
}
