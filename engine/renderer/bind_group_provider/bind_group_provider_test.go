package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Instances", WithIndexCount(36))

	assert.Equal(t, "Instances", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
}

func TestCapacityWithoutBuffer(t *testing.T) {
	p := NewBindGroupProvider("Instances")

	// a nil buffer never reports capacity even if one was recorded
	p.SetBuffer(0, nil, 128)
	assert.Equal(t, 0, p.Capacity(0))
	assert.Equal(t, 0, p.Capacity(3))
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("Box Mesh", WithIndexCount(36))
	p.SetBuffer(0, nil, 64)

	assert.NotPanics(t, p.ReleaseBuffers)
	assert.Equal(t, 0, p.Capacity(0))
	assert.Equal(t, 36, p.IndexCount())

	assert.NotPanics(t, p.Release)
	assert.Equal(t, 0, p.IndexCount())
}
