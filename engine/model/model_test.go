package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxCounts(t *testing.T) {
	box := NewBox()

	assert.Equal(t, "box", box.Name())
	assert.Len(t, box.Vertices(), 24)
	assert.Equal(t, 36, box.IndexCount())
	assert.Len(t, box.VertexData(), 24*24)
	assert.Len(t, box.IndexData(), 36*4)
	assert.InDelta(t, math.Sqrt(3), box.BoundingRadius(), 1e-6)
	assert.Nil(t, box.MeshProvider())
}

func TestNewBoxGeometry(t *testing.T) {
	box := NewBox()
	vertices := box.Vertices()

	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1, math.Abs(float64(v.Position[i])), 1e-6)
		}
		n := mgl32.Vec3(v.Normal)
		assert.InDelta(t, 1, n.Len(), 1e-6)
		// the vertex lies on the face its normal points out of
		assert.InDelta(t, 1, mgl32.Vec3(v.Position).Dot(n), 1e-6)
	}

	indices := box.Indices()
	for i := 0; i < len(indices); i += 3 {
		a := mgl32.Vec3(vertices[indices[i]].Position)
		b := mgl32.Vec3(vertices[indices[i+1]].Position)
		c := mgl32.Vec3(vertices[indices[i+2]].Position)
		n := mgl32.Vec3(vertices[indices[i]].Normal)

		winding := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, winding.Dot(n), float32(0), "triangle %d winds clockwise", i/3)
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, -2, 3}, Normal: [3]float32{0, 0, -1}}
	require.Equal(t, 24, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 24)
	assert.Equal(t, float32(-2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{0, 7, 65536})
	require.Len(t, buf, 12)
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[4:]))
	assert.Equal(t, uint32(65536), binary.LittleEndian.Uint32(buf[8:]))

	// The buffer is a copy, not a view of the index slice.
	indices := []uint32{1, 2}
	buf = MarshalIndices(indices)
	indices[0] = 9
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf))
	assert.Nil(t, MarshalIndices(nil))
}

func TestComputeBoundingRadiusEmpty(t *testing.T) {
	assert.Zero(t, ComputeBoundingRadius(nil))
	assert.Zero(t, NewModel().BoundingRadius())
}
