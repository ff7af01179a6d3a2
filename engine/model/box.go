package model

import "github.com/go-gl/mathgl/mgl32"

// BoxHalfExtent is the half side length of the box mesh; the box spans [-1, 1] on every axis.
const BoxHalfExtent = 1

// boxFaces lists each face normal with two in-face axes u, v where u × v = normal,
// so the corners -u-v, u-v, u+v, -u+v wind counter-clockwise seen from outside.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// NewBox builds the unit box every scene object is drawn with: 24 vertices (four per face
// so each face carries its own normal) and 36 indices.
//
// Returns:
//   - Model: the box model
func NewBox() Model {
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(vertices))
		for _, c := range corners {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(BoxHalfExtent)
			vertices = append(vertices, GPUVertex{Position: p, Normal: n})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewModel(WithName("box"), WithMesh(vertices, indices))
}
