package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/srinu427/residue-engine/internal/geometry"
)

// Face is one flat side of a mesh: its support plane plus the vertex-index loop
// that bounds it. Loops are wound so the plane normal points out of the mesh.
type Face struct {
	Plane geometry.Plane
	Loop  []int
}

// PolygonMesh is a convex polygon mesh in local space. Beyond the raw faces it
// keeps two derived lists used by the separating-axis search:
//
//   - collisionFaces: every face plane, followed by one bevel plane per boundary
//     edge (an edge bounding exactly one face). Bevels catch edge-grazing
//     contact that face planes alone miss on flat shapes.
//   - edges: unique vertex-index pairs, reused both as mesh boundaries and as
//     edge-cross axis candidates.
type PolygonMesh struct {
	Vertices []geometry.Point
	Faces    []Face

	collisionFaces []geometry.Plane
	edges          [][2]int
}

// NewPolygonMesh builds a mesh from vertices and face loops. Each loop must
// hold at least three indices wound counter-clockwise seen from outside.
func NewPolygonMesh(vertices []geometry.Point, loops [][]int) *PolygonMesh {
	m := &PolygonMesh{Vertices: vertices}
	centroid := geometry.AveragePoint(vertices)

	type edgeRef struct {
		start, end int // directed, as wound in the owning face
		face       int
		uses       int
	}
	var edgeOrder [][2]int
	edgeIndex := make(map[[2]int]int)
	refs := make([]edgeRef, 0, len(loops)*4)

	for fi, loop := range loops {
		e0 := geometry.DirBetween(vertices[loop[0]], vertices[loop[1]])
		e1 := geometry.DirBetween(vertices[loop[1]], vertices[loop[2]])
		plane := geometry.NewPlane(e0.Cross(e1), vertices[loop[0]])
		m.Faces = append(m.Faces, Face{Plane: plane, Loop: loop})

		for i := range loop {
			a, b := loop[i], loop[(i+1)%len(loop)]
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if idx, ok := edgeIndex[key]; ok {
				refs[idx].uses++
				continue
			}
			edgeIndex[key] = len(refs)
			refs = append(refs, edgeRef{start: a, end: b, face: fi, uses: 1})
			edgeOrder = append(edgeOrder, key)
		}
	}

	for _, pl := range m.Faces {
		m.collisionFaces = append(m.collisionFaces, pl.Plane)
	}
	for _, key := range edgeOrder {
		ref := refs[edgeIndex[key]]
		m.edges = append(m.edges, [2]int{ref.start, ref.end})
		if ref.uses != 1 {
			continue
		}
		// Boundary edge: bevel plane normal = face normal x edge direction,
		// flipped if needed so the mesh sits on the non-positive side.
		edgeDir := geometry.DirBetween(vertices[ref.start], vertices[ref.end])
		bevelNormal := m.Faces[ref.face].Plane.Normal.Cross(edgeDir)
		if bevelNormal.IsZero() {
			continue
		}
		bevel := geometry.NewPlane(bevelNormal, vertices[ref.start])
		if bevel.DistFromPoint(centroid) > 0 {
			bevel = bevel.Opposite()
		}
		m.collisionFaces = append(m.collisionFaces, bevel)
	}
	return m
}

// CollisionFaces returns the SAT candidate planes: face planes first, then
// boundary-edge bevels.
func (m *PolygonMesh) CollisionFaces() []geometry.Plane {
	return m.collisionFaces
}

// Edges returns the unique boundary edges as vertex-index pairs.
func (m *PolygonMesh) Edges() [][2]int {
	return m.edges
}

// EdgeSegment returns edge i as a local-space segment.
func (m *PolygonMesh) EdgeSegment(i int) geometry.LineSegment {
	e := m.edges[i]
	return geometry.Segment(m.Vertices[e[0]], m.Vertices[e[1]])
}

// NewRectangle builds a single-face rectangle spanning tangent x bitangent
// around center. The face normal is tangent cross bitangent; the four boundary
// edges each contribute a bevel plane to the collision-face set.
func NewRectangle(center geometry.Point, tangent, bitangent geometry.Direction) *PolygonMesh {
	ht := tangent.Scale(0.5)
	hb := bitangent.Scale(0.5)

	vertices := []geometry.Point{
		center.Displace(ht).Displace(hb),
		center.Displace(ht.Opposite()).Displace(hb),
		center.Displace(ht.Opposite()).Displace(hb.Opposite()),
		center.Displace(ht).Displace(hb.Opposite()),
	}
	return NewPolygonMesh(vertices, [][]int{{0, 1, 2, 3}})
}

// NewCuboid builds a closed box: the rectangle spanned by tangent x bitangent
// extruded by depth along the outward normal (tangent cross bitangent). Eight
// vertices, six faces, twelve edges, no bevels.
func NewCuboid(center geometry.Point, tangent, bitangent geometry.Direction, depth float32) *PolygonMesh {
	normal := tangent.Cross(bitangent).Normalize()

	ht := tangent.Scale(0.5)
	hb := bitangent.Scale(0.5)
	hd := normal.Scale(depth / 2)

	top := center.Displace(hd)
	bottom := center.Displace(hd.Opposite())
	vertices := []geometry.Point{
		top.Displace(ht).Displace(hb),
		top.Displace(ht.Opposite()).Displace(hb),
		top.Displace(ht.Opposite()).Displace(hb.Opposite()),
		top.Displace(ht).Displace(hb.Opposite()),
		bottom.Displace(ht).Displace(hb),
		bottom.Displace(ht).Displace(hb.Opposite()),
		bottom.Displace(ht.Opposite()).Displace(hb.Opposite()),
		bottom.Displace(ht.Opposite()).Displace(hb),
	}
	loops := [][]int{
		{0, 1, 2, 3}, // +normal
		{4, 5, 6, 7}, // -normal
		{0, 3, 5, 4}, // +tangent
		{2, 1, 7, 6}, // -tangent
		{0, 4, 7, 1}, // +bitangent
		{3, 2, 6, 5}, // -bitangent
	}
	return NewPolygonMesh(vertices, loops)
}

// worldPlane transforms collision face i into world space.
func (m *PolygonMesh) worldPlane(i int, transform rl.Matrix) geometry.Plane {
	return m.collisionFaces[i].Transform(transform)
}

// worldEdge transforms edge i into world space.
func (m *PolygonMesh) worldEdge(i int, transform rl.Matrix) geometry.LineSegment {
	return m.EdgeSegment(i).Transform(transform)
}
