package attractor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/attractor-viewer/internal/engine/gpu"
)

// Segment is the cached geometry of one trajectory segment: a closed
// triangle strip between two consecutive rings.
type Segment struct {
	Index    int
	Vertices []mgl32.Vec3 // 2N+2 vertices, rings interleaved
	Buffer   gpu.Buffer
}

// segmentCache holds the segments computed since the last invalidation.
// Segments only ever grow as a contiguous prefix: segment i is built from the
// ring left behind by segment i-1, so it cannot exist without its predecessor.
type segmentCache struct {
	segments []Segment
	epoch    int // bumped on every clear
}

func (c *segmentCache) len() int {
	return len(c.segments)
}

func (c *segmentCache) get(i int) (*Segment, bool) {
	if i < 0 || i >= len(c.segments) {
		return nil, false
	}
	return &c.segments[i], true
}

func (c *segmentCache) add(s Segment) {
	if s.Index != len(c.segments) {
		panic(fmt.Sprintf("attractor: segment %d added before segment %d in epoch %d",
			s.Index, len(c.segments), c.epoch))
	}
	c.segments = append(c.segments, s)
}

// clear drops every segment, handing each buffer to release first.
func (c *segmentCache) clear(release func(*gpu.Buffer)) int {
	n := len(c.segments)
	for i := range c.segments {
		if release != nil {
			release(&c.segments[i].Buffer)
		}
	}
	c.segments = nil
	c.epoch++
	return n
}
