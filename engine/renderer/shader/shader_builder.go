package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name.
//
// Parameters:
//   - name: the WGSL function name of the entry point
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithVertexLayout appends a vertex buffer layout. Layouts bind to vertex slots in the order they are added.
//
// Parameters:
//   - layout: the vertex buffer layout for the next slot
//
// Returns:
//   - ShaderBuilderOption: a function that appends the layout
func WithVertexLayout(layout wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = append(s.vertexLayouts, layout)
	}
}

// WithBindGroupLayout declares the entries of one bind group. Entries with no visibility
// set receive the shader's own stage.
//
// Parameters:
//   - group: the bind group index
//   - entries: the layout entries of the group
//
// Returns:
//   - ShaderBuilderOption: a function that declares the bind group layout
func WithBindGroupLayout(group int, entries ...wgpu.BindGroupLayoutEntry) ShaderBuilderOption {
	return func(s *shader) {
		cp := make([]wgpu.BindGroupLayoutEntry, len(entries))
		for i, e := range entries {
			if e.Visibility == wgpu.ShaderStageNone {
				e.Visibility = s.shaderType.Visibility()
			}
			cp[i] = e
		}
		s.bindGroupLayoutDescriptors[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   s.key,
			Entries: cp,
		}
	}
}
