package bsp

import (
	"fmt"
	"io"
)

// ChunkType is the type tag of a chunk header.
type ChunkType int32

const (
	ChunkGLProject      ChunkType = 1     // Camera projection (alternate tag)
	ChunkMaterialObj    ChunkType = 5     // Material
	ChunkModelGroup     ChunkType = 1000  // Mesh
	ChunkBoneObj        ChunkType = 1001  // Frame
	ChunkSPMesh         ChunkType = 1002  // Model part
	ChunkCollision      ChunkType = 1003  // Collision tree
	ChunkAtomicMesh     ChunkType = 1004  // Atomic mesh
	ChunkSkinObj        ChunkType = 1005  // Clump
	ChunkGLCamera       ChunkType = 1006  // Camera projection
	ChunkLightObj       ChunkType = 1007  // Light
	ChunkLevelObj       ChunkType = 1009  // Frame child
	ChunkMaterials      ChunkType = 1010  // Material count
	ChunkSectorOctree   ChunkType = 1011  // Sector octree
	ChunkWorld          ChunkType = 1012  // World
	ChunkAnimationKey   ChunkType = 1015  // Animation key
	ChunkAnimLib        ChunkType = 1017  // Animation dictionary
	ChunkOcclusionMesh  ChunkType = 1018  // NGon list
	ChunkOcclusion      ChunkType = 1019  // Occlusion tree
	ChunkWpPoints       ChunkType = 1020  // Null list
	ChunkNavigationMesh ChunkType = 1021  // Navigation mesh
	ChunkZones          ChunkType = 1023  // Zones
	ChunkArea           ChunkType = 1024  // Spline
	ChunkLinkEmm        ChunkType = 1026  // Null box
	ChunkAnimation      ChunkType = 1027  // Animation clips
	ChunkSpLights       ChunkType = 1029  // Switchable lights
	ChunkEntities       ChunkType = 20000 // Entity count
	ChunkEntity         ChunkType = 20001 // Entity
	ChunkTextures       ChunkType = 20002 // Texture list
)

// ChunkTypes lists every known chunk type in ascending order.
var ChunkTypes = []ChunkType{
	ChunkGLProject, ChunkMaterialObj, ChunkModelGroup, ChunkBoneObj,
	ChunkSPMesh, ChunkCollision, ChunkAtomicMesh, ChunkSkinObj,
	ChunkGLCamera, ChunkLightObj, ChunkLevelObj, ChunkMaterials,
	ChunkSectorOctree, ChunkWorld, ChunkAnimationKey, ChunkAnimLib,
	ChunkOcclusionMesh, ChunkOcclusion, ChunkWpPoints, ChunkNavigationMesh,
	ChunkZones, ChunkArea, ChunkLinkEmm, ChunkAnimation,
	ChunkSpLights, ChunkEntities, ChunkEntity, ChunkTextures,
}

var chunkNames = map[ChunkType]string{
	ChunkGLProject:      "GLProject",
	ChunkMaterialObj:    "MaterialObj",
	ChunkModelGroup:     "ModelGroup",
	ChunkBoneObj:        "BoneObj",
	ChunkSPMesh:         "SPMesh",
	ChunkCollision:      "Collision",
	ChunkAtomicMesh:     "AtomicMesh",
	ChunkSkinObj:        "SkinObj",
	ChunkGLCamera:       "GLCamera",
	ChunkLightObj:       "LightObj",
	ChunkLevelObj:       "LevelObj",
	ChunkMaterials:      "Materials",
	ChunkSectorOctree:   "SectorOctree",
	ChunkWorld:          "World",
	ChunkAnimationKey:   "AnimationKey",
	ChunkAnimLib:        "AnimLib",
	ChunkOcclusionMesh:  "OcclusionMesh",
	ChunkOcclusion:      "Occlusion",
	ChunkWpPoints:       "WpPoints",
	ChunkNavigationMesh: "NavigationMesh",
	ChunkZones:          "Zones",
	ChunkArea:           "Area",
	ChunkLinkEmm:        "LinkEmm",
	ChunkAnimation:      "Animation",
	ChunkSpLights:       "SpLights",
	ChunkEntities:       "Entities",
	ChunkEntity:         "Entity",
	ChunkTextures:       "Textures",
}

// String returns the chunk type name.
func (t ChunkType) String() string {
	if name, ok := chunkNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int32(t))
}

// Valid reports whether t is a known chunk type.
func (t ChunkType) Valid() bool {
	_, ok := chunkNames[t]
	return ok
}

// ChunkHeaderSize is the encoded size of a chunk header.
const ChunkHeaderSize = 12

// ChunkHeader precedes every chunk payload.
type ChunkHeader struct {
	Type    ChunkType
	Size    int32 // payload size in bytes, header excluded
	Version int32
}

// AtLeast reports whether the chunk format version is >= v.
func (h ChunkHeader) AtLeast(v int32) bool {
	return h.Version >= v
}

// readChunkHeader reads a chunk header. A clean end of stream before the
// first header byte is reported as io.EOF; any shorter header is truncation.
func readChunkHeader(r *Reader) (ChunkHeader, error) {
	var h ChunkHeader

	eof, err := r.atEOF()
	if err != nil {
		return h, err
	}
	if eof {
		return h, io.EOF
	}

	f := newFieldReader(r)
	tag := f.i32()
	h.Size = f.i32()
	h.Version = f.i32()
	if f.err != nil {
		return h, f.err
	}

	h.Type = ChunkType(tag)
	if !h.Type.Valid() {
		return h, fmt.Errorf("%w %d", ErrUnknownChunkType, tag)
	}
	if h.Size < 0 {
		return h, negativeCount(h.Type.String()+" chunk size", int64(h.Size))
	}
	return h, nil
}
