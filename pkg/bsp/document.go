// Package bsp decodes BSP scene files: a gzip-wrapped stream of tagged,
// length-prefixed chunks describing the textures, materials, geometry,
// spatial trees, animation and lighting of a level.
package bsp

import (
	"bufio"
	"io"
	"os"
	"slices"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	log *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger logs one debug entry per decoded chunk to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Document holds every record decoded from one BSP stream, grouped by type in
// stream order.
type Document struct {
	Compressed bool  // input was gzip-compressed
	Size       int64 // decompressed size in bytes

	Textures              []Texture
	MaterialCount         int32
	Materials             []*Material
	Meshes                []*Mesh
	ModelParts            []*ModelPart
	Collisions            []*Collision
	AtomicMeshes          []*AtomicMesh
	Clumps                []*Clump
	Cameras               []*CameraProjection
	Lights                []*Light
	FrameChildren         []*FrameChild
	Frames                []*Frame
	Octrees               []*SectorOctree
	World                 *World // last World chunk
	AnimationKeys         []*AnimationKey
	AnimationDictionaries []*AnimationDictionary
	NGonLists             []*NGonList
	Occlusions            []*Occlusion
	Nulls                 []Null
	NavigationMeshes      []*NavigationMesh
	Zones                 []*Zones
	Splines               []*Spline
	NullBoxes             []*NullBox
	Clips                 []*Clips
	SwitchableLights      []*SwitchableLights
	EntityCount           uint32
	Entities              []*Entity

	counts map[ChunkType]int
}

// TypeCount is the number of chunks of one type in a document.
type TypeCount struct {
	Type  ChunkType
	Count int
}

// Counts returns the number of chunks per type, ordered by type.
func (d *Document) Counts() []TypeCount {
	out := make([]TypeCount, 0, len(d.counts))
	for t, n := range d.counts {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	slices.SortFunc(out, func(a, b TypeCount) int { return int(a.Type) - int(b.Type) })
	return out
}

// Chunks returns the total number of chunks decoded.
func (d *Document) Chunks() int {
	total := 0
	for _, n := range d.counts {
		total += n
	}
	return total
}

// TotalVertices returns the number of vertices over all model parts.
func (d *Document) TotalVertices() int {
	total := 0
	for _, p := range d.ModelParts {
		total += len(p.Vertices)
	}
	return total
}

// TotalTriangles returns the number of triangles over all model parts.
func (d *Document) TotalTriangles() int {
	total := 0
	for _, p := range d.ModelParts {
		total += len(p.Indices)
	}
	return total
}

func (d *Document) add(c *Chunk) {
	d.counts[c.Header.Type]++

	switch rec := c.Record.(type) {
	case *TextureList:
		d.Textures = append(d.Textures, rec.Textures...)
	case *MaterialCount:
		d.MaterialCount = rec.Count
	case *Material:
		d.Materials = append(d.Materials, rec)
	case *Mesh:
		d.Meshes = append(d.Meshes, rec)
	case *ModelPart:
		d.ModelParts = append(d.ModelParts, rec)
	case *Collision:
		d.Collisions = append(d.Collisions, rec)
	case *AtomicMesh:
		d.AtomicMeshes = append(d.AtomicMeshes, rec)
	case *Clump:
		d.Clumps = append(d.Clumps, rec)
	case *CameraProjection:
		d.Cameras = append(d.Cameras, rec)
	case *Light:
		d.Lights = append(d.Lights, rec)
	case *FrameChild:
		d.FrameChildren = append(d.FrameChildren, rec)
	case *Frame:
		d.Frames = append(d.Frames, rec)
	case *SectorOctree:
		d.Octrees = append(d.Octrees, rec)
	case *World:
		d.World = rec
	case *AnimationKey:
		d.AnimationKeys = append(d.AnimationKeys, rec)
	case *AnimationDictionary:
		d.AnimationDictionaries = append(d.AnimationDictionaries, rec)
	case *NGonList:
		d.NGonLists = append(d.NGonLists, rec)
	case *Occlusion:
		d.Occlusions = append(d.Occlusions, rec)
	case *NullList:
		d.Nulls = append(d.Nulls, rec.Nulls...)
	case *NavigationMesh:
		d.NavigationMeshes = append(d.NavigationMeshes, rec)
	case *Zones:
		d.Zones = append(d.Zones, rec)
	case *Spline:
		d.Splines = append(d.Splines, rec)
	case *NullBox:
		d.NullBoxes = append(d.NullBoxes, rec)
	case *Clips:
		d.Clips = append(d.Clips, rec)
	case *SwitchableLights:
		d.SwitchableLights = append(d.SwitchableLights, rec)
	case *EntityCount:
		d.EntityCount = rec.Count
	case *Entity:
		d.Entities = append(d.Entities, rec)
	}
}

// gzipMagic is the two-byte gzip member header.
var gzipMagic = [2]byte{0x1F, 0x8B}

// OpenStream returns a reader over the decompressed content of r. The input
// is treated as gzip-compressed when it starts with the gzip magic number and
// passed through otherwise; no bytes are lost either way.
func OpenStream(r io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, false, errors.Wrap(err, "sniffing gzip header")
	}
	if len(magic) < len(gzipMagic) || [2]byte(magic) != gzipMagic {
		return br, false, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, true, errors.Wrap(err, "opening gzip stream")
	}
	return zr, true, nil
}

// Decode reads a BSP document from r, decompressing it if needed.
func Decode(r io.Reader, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	stream, compressed, err := OpenStream(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{Compressed: compressed, counts: make(map[ChunkType]int)}
	cr := NewChunkReader(stream, WithLogger(o.log))
	for {
		chunk, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		doc.add(chunk)
	}
	doc.Size = cr.Offset()

	if int(doc.MaterialCount) != len(doc.Materials) {
		return nil, &MaterialCountError{Declared: doc.MaterialCount, Decoded: len(doc.Materials)}
	}

	o.log.Debug("decoded document",
		zap.Int("chunks", doc.Chunks()),
		zap.Int64("size", doc.Size),
		zap.Bool("compressed", compressed),
	)
	return doc, nil
}

// DecodeFile reads a BSP document from the file at path.
func DecodeFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening BSP file")
	}
	defer f.Close()

	doc, err := Decode(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return doc, nil
}
