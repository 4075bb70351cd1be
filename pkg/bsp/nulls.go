package bsp

// NullList is the payload of a WpPoints chunk.
type NullList struct {
	Nulls []Null
}

// Null is a named locator.
type Null struct {
	Matrix     Matrix
	Bounds     BoundingBox
	Hash       uint32
	FloorFlags uint32
	Flags      uint32
	SpawnType  uint32
	Name       string
}

// NullBox is the payload of a LinkEmm chunk.
type NullBox struct {
	BaseFlags uint32
	NullIndex uint32
	Bounds    OrientedBoundingBox
	NameHash  uint32
	SpawnType uint32
}

// Spline is the payload of an Area chunk.
type Spline struct {
	Closed bool
	Type   uint32
	Points []Vector3
}

func decodeNull(r *Reader) (Null, error) {
	f := newFieldReader(r)
	n := Null{
		Matrix:     f.matrix(),
		Bounds:     f.bbox(),
		Hash:       f.u32(),
		FloorFlags: f.u32(),
		Flags:      f.u32(),
		SpawnType:  f.u32(),
		Name:       f.str(),
	}
	return n, f.err
}

func decodeNullList(r *Reader) (*NullList, error) {
	f := newFieldReader(r)
	l := &NullList{Nulls: sequence(f, decodeNull)}
	return l, f.wrap("nulls")
}

func decodeNullBox(r *Reader) (*NullBox, error) {
	f := newFieldReader(r)
	b := &NullBox{
		BaseFlags: f.u32(),
		NullIndex: f.u32(),
		Bounds:    field(f, ReadOrientedBoundingBox),
		NameHash:  f.u32(),
		SpawnType: f.u32(),
	}
	return b, f.wrap("null box")
}

func decodeSpline(r *Reader) (*Spline, error) {
	f := newFieldReader(r)
	points := f.u32()
	s := &Spline{Closed: f.boolean(), Type: f.u32()}
	s.Points = array(f, int(points), ReadVector3)
	return s, f.wrap("spline")
}
