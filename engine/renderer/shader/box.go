package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed box.wgsl
var boxSource string

// Box shader layout constants shared with the renderer's buffer packing.
const (
	// BoxVertexStride is the byte size of one box vertex: position then normal, both vec3<f32>.
	BoxVertexStride = 6 * 4

	// BoxInstanceGroup and BoxInstanceBinding locate the per-instance storage buffer.
	BoxInstanceGroup   = 0
	BoxInstanceBinding = 0

	// BoxInstanceSize is the byte size of one instance: two mat4x4<f32>.
	BoxInstanceSize = 2 * 16 * 4
)

// BoxSource returns the embedded WGSL for the instanced box shader.
func BoxSource() string {
	return boxSource
}

// NewBoxShaders builds the vertex and fragment stages of the instanced box shader.
//
// Returns:
//   - Shader: the vertex stage, with the box vertex layout and instance storage binding
//   - Shader: the fragment stage
//   - error: if either stage fails to build
func NewBoxShaders() (Shader, Shader, error) {
	vs, err := NewShader("box_vert", ShaderTypeVertex, boxSource,
		WithVertexLayout(wgpu.VertexBufferLayout{
			ArrayStride: BoxVertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			},
		}),
		WithBindGroupLayout(BoxInstanceGroup, wgpu.BindGroupLayoutEntry{
			Binding: BoxInstanceBinding,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeReadOnlyStorage,
				MinBindingSize: BoxInstanceSize,
			},
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader("box_frag", ShaderTypeFragment, boxSource)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}
