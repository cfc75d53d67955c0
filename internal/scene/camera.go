package scene

import (
	"math"
	"sort"
)

const (
	// DefaultAzimuth and DefaultElevation match the usual 3D axes view.
	DefaultAzimuth   = -60.0
	DefaultElevation = 30.0

	zAspect      = 0.75
	minShade     = 0.35
	ambientShade = 0.25
)

var lightDir = Vec3{X: -1, Y: -1, Z: 2}.Unit()

// Camera is an orthographic view direction in degrees.
type Camera struct {
	Azimuth   float64
	Elevation float64
}

// DefaultCamera returns the default view.
func DefaultCamera() Camera {
	return Camera{Azimuth: DefaultAzimuth, Elevation: DefaultElevation}
}

// Rotate returns the camera turned by the given deltas with elevation
// clamped to [0, 90] and azimuth wrapped to (-180, 180].
func (c Camera) Rotate(dAzimuth, dElevation float64) Camera {
	az := math.Mod(c.Azimuth+dAzimuth, 360)
	if az > 180 {
		az -= 360
	}
	if az <= -180 {
		az += 360
	}
	el := c.Elevation + dElevation
	if el < 0 {
		el = 0
	}
	if el > 90 {
		el = 90
	}
	return Camera{Azimuth: az, Elevation: el}
}

// Projector maps data-space points into a normalized view plane.
type Projector struct {
	bounds Bounds
	right  Vec3
	up     Vec3
	eye    Vec3
}

// NewProjector builds a projector for the camera over the given data box.
func NewProjector(cam Camera, bounds Bounds) Projector {
	az := cam.Azimuth * math.Pi / 180
	el := cam.Elevation * math.Pi / 180
	return Projector{
		bounds: bounds.Padded(),
		eye:    Vec3{math.Cos(el) * math.Cos(az), math.Cos(el) * math.Sin(az), math.Sin(el)},
		right:  Vec3{-math.Sin(az), math.Cos(az), 0},
		up:     Vec3{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
	}
}

// normalize maps the data box to a cube centred on the origin, with the
// vertical axis squashed to zAspect.
func (p Projector) normalize(v Vec3) Vec3 {
	b := p.bounds
	return Vec3{
		X: (v.X-b.Min.X)/(b.Max.X-b.Min.X) - 0.5,
		Y: (v.Y-b.Min.Y)/(b.Max.Y-b.Min.Y) - 0.5,
		Z: ((v.Z-b.Min.Z)/(b.Max.Z-b.Min.Z) - 0.5) * zAspect,
	}
}

// Project returns the view-plane position and the depth of v. Larger depth
// is closer to the viewer.
func (p Projector) Project(v Vec3) (Point, float64) {
	n := p.normalize(v)
	return Point{X: n.Dot(p.right), Y: n.Dot(p.up)}, n.Dot(p.eye)
}

// ProjectAll projects a polygon.
func (p Projector) ProjectAll(vs []Vec3) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i], _ = p.Project(v)
	}
	return out
}

// Depth returns the mean depth of a set of points.
func (p Projector) Depth(vs []Vec3) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		_, d := p.Project(v)
		sum += d
	}
	return sum / float64(len(vs))
}

// Extent returns the projected bounding rectangle of the data box corners.
func (p Projector) Extent() (Point, Point) {
	minPt := Point{math.Inf(1), math.Inf(1)}
	maxPt := Point{math.Inf(-1), math.Inf(-1)}
	for _, c := range p.bounds.Corners() {
		pt, _ := p.Project(c)
		minPt.X = math.Min(minPt.X, pt.X)
		minPt.Y = math.Min(minPt.Y, pt.Y)
		maxPt.X = math.Max(maxPt.X, pt.X)
		maxPt.Y = math.Max(maxPt.Y, pt.Y)
	}
	return minPt, maxPt
}

// SortFaces returns faces ordered far to near for painter's drawing.
func (p Projector) SortFaces(faces []Face) []Face {
	type keyed struct {
		face  Face
		depth float64
	}
	items := make([]keyed, len(faces))
	for i, f := range faces {
		items[i] = keyed{face: f, depth: p.Depth(f.Vertices)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].depth < items[j].depth
	})
	out := make([]Face, len(items))
	for i, it := range items {
		out[i] = it.face
	}
	return out
}

// Visible reports whether a face with the given outward normal faces the camera.
func (p Projector) Visible(normal Vec3) bool {
	return p.scaleNormal(normal).Dot(p.eye) > 0
}

// Shade returns a brightness factor in [minShade, 1] for a face normal.
func (p Projector) Shade(normal Vec3) float64 {
	n := p.scaleNormal(normal).Unit()
	if n.Dot(p.eye) < 0 {
		n = n.Scale(-1)
	}
	lambert := math.Max(0, n.Dot(lightDir))
	s := ambientShade + (1-ambientShade)*lambert
	return math.Max(minShade, math.Min(1, s))
}

// scaleNormal maps a data-space normal into normalized space.
func (p Projector) scaleNormal(n Vec3) Vec3 {
	b := p.bounds
	return Vec3{
		X: n.X * (b.Max.X - b.Min.X),
		Y: n.Y * (b.Max.Y - b.Min.Y),
		Z: n.Z * (b.Max.Z - b.Min.Z) / zAspect,
	}.Unit()
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() []Vec3 {
	out := make([]Vec3, 0, 8)
	for _, x := range []float64{b.Min.X, b.Max.X} {
		for _, y := range []float64{b.Min.Y, b.Max.Y} {
			for _, z := range []float64{b.Min.Z, b.Max.Z} {
				out = append(out, Vec3{x, y, z})
			}
		}
	}
	return out
}
