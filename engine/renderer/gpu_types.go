package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
)

// GPUInstance is the GPU-aligned representation of one drawn box.
// Matches the Instance struct of the box shader.
// Size: 128 bytes (two mat4x4<f32>, std430 aligned, no padding required).
type GPUInstance struct {
	MVP   [16]float32 // offset  0: model-view-projection in WebGPU clip space (64 bytes)
	Model [16]float32 // offset 64: model-to-world transform for lighting (64 bytes)
}

// PackInstance builds the instance record for drawing a box with the given transforms.
// The view-projection is expected in GL clip space (depth in [-1, 1]) as produced by
// mgl32.Perspective and mgl32.Frustum; it is remapped to WebGPU's [0, 1] depth here.
//
// Parameters:
//   - viewProjection: the camera or eye view-projection matrix
//   - world: the object's model-to-world transform
//
// Returns:
//   - GPUInstance: the packed instance
func PackInstance(viewProjection, world mgl32.Mat4) GPUInstance {
	return GPUInstance{
		MVP:   common.ClipRemap.Mul4(viewProjection).Mul4(world),
		Model: world,
	}
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 128)
	g.marshalInto(buf)
	return buf
}

func (g *GPUInstance) marshalInto(buf []byte) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Model[i]))
	}
}

// MarshalInstances packs instances back to back for a storage buffer write.
//
// Parameters:
//   - instances: the instances to serialize
//
// Returns:
//   - []byte: the packed buffer contents
func MarshalInstances(instances []GPUInstance) []byte {
	buf := make([]byte, len(instances)*128)
	for i := range instances {
		instances[i].marshalInto(buf[i*128:])
	}
	return buf
}
