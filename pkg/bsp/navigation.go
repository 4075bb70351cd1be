package bsp

import (
	"math"
)

// linkSentinel terminates a waypoint's link run.
const linkSentinel = math.MaxUint32

// NavigationMesh is the payload of a NavigationMesh chunk.
type NavigationMesh struct {
	Waypoints []Waypoint
	LinkCount int32    // as declared in the chunk
	Links     [][]Link // one run per waypoint
}

// Waypoint is a navigation node.
type Waypoint struct {
	Position Vector3
	Flags    uint32
}

// Link connects a waypoint to another.
type Link struct {
	Waypoint uint32
	Flags    uint32
}

func decodeWaypoint(r *Reader) (Waypoint, error) {
	f := newFieldReader(r)
	return Waypoint{Position: f.vec3(), Flags: f.u32()}, f.err
}

// decodeLinks reads links until the sentinel index, which is consumed.
func decodeLinks(r *Reader) ([]Link, error) {
	var links []Link
	for {
		idx, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if idx == linkSentinel {
			return links, nil
		}
		flags, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		links = append(links, Link{Waypoint: idx, Flags: flags})
	}
}

func decodeNavigationMesh(r *Reader) (*NavigationMesh, error) {
	f := newFieldReader(r)
	waypoints := f.count()
	n := &NavigationMesh{LinkCount: f.i32()}
	if f.ok() && n.LinkCount < 0 {
		f.fail(negativeCount("link count", int64(n.LinkCount)))
	}
	n.Waypoints = array(f, waypoints, decodeWaypoint)
	n.Links = array(f, waypoints, decodeLinks)
	return n, f.wrap("navigation mesh")
}

// NumLinks returns the number of links over all waypoints.
func (n *NavigationMesh) NumLinks() int {
	total := 0
	for _, run := range n.Links {
		total += len(run)
	}
	return total
}
