package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorMaskWriteMask(t *testing.T) {
	tests := []struct {
		mask ColorMask
		want wgpu.ColorWriteMask
		name string
	}{
		{ColorMaskAll, wgpu.ColorWriteMaskAll, "all"},
		{ColorMaskRed, wgpu.ColorWriteMaskRed, "red"},
		{ColorMaskCyan, wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskBlue, "cyan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mask.WriteMask())
			assert.Equal(t, tt.name, tt.mask.String())
			assert.Equal(t, "box_"+tt.name, tt.mask.pipelineKey())
		})
	}

	// red and cyan together cover exactly the color channels
	assert.Equal(t, wgpu.ColorWriteMaskRed|wgpu.ColorWriteMaskGreen|wgpu.ColorWriteMaskBlue,
		ColorMaskRed.WriteMask()|ColorMaskCyan.WriteMask())
	assert.Zero(t, ColorMaskRed.WriteMask()&ColorMaskCyan.WriteMask())
}

func TestPackInstanceRemapsDepth(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	world := mgl32.Translate3D(1, 2, 3)

	inst := PackInstance(proj.Mul4(view), world)
	assert.Equal(t, [16]float32(world), inst.Model)

	// near-plane point lands at depth 0, far-plane point at depth 1
	mvp := mgl32.Mat4(inst.MVP)
	for _, tc := range []struct {
		dist  float32
		depth float32
	}{{0.1, 0}, {1000, 1}} {
		local := mgl32.Vec3{-1, -2, 100 - tc.dist - 3}
		clip := mvp.Mul4x1(local.Vec4(1))
		assert.InDelta(t, tc.depth, clip.Z()/clip.W(), 1e-3)
	}
}

func TestMarshalInstances(t *testing.T) {
	a := GPUInstance{}
	a.MVP[5] = 2.5
	b := GPUInstance{}
	b.Model[15] = -1

	require.Equal(t, 128, a.Size())
	assert.Equal(t, a.Marshal(), MarshalInstances([]GPUInstance{a})[:128])

	buf := MarshalInstances([]GPUInstance{a, b})
	require.Len(t, buf, 256)
	assert.Equal(t, float32(2.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[5*4:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[128+64+15*4:])))
}

func TestGrowCapacity(t *testing.T) {
	assert.Equal(t, 128, growCapacity(128, 101))
	assert.Equal(t, 256, growCapacity(128, 129))
	assert.Equal(t, 8, growCapacity(0, 5))
	assert.Equal(t, 64, growCapacity(64, 0))
}

func TestParsePresentMode(t *testing.T) {
	for name, want := range map[string]PresentMode{
		"fifo": PresentModeVSync, "": PresentModeVSync, "VSync": PresentModeVSync,
		"immediate": PresentModeUncapped, "mailbox": PresentModeMailbox,
	} {
		got, err := ParsePresentMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParsePresentMode("triple")
	assert.Error(t, err)
}

func TestParseMSAA(t *testing.T) {
	got, err := ParseMSAA(4)
	require.NoError(t, err)
	assert.Equal(t, MSAA4x, got)

	got, err = ParseMSAA(0)
	require.NoError(t, err)
	assert.Equal(t, MSAAOff, got)

	_, err = ParseMSAA(3)
	assert.Error(t, err)
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "v", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "f", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
		}},
		2: {Label: "f2", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 3)

	require.Len(t, merged[0].Entries, 2)
	assert.Equal(t, uint32(0), merged[0].Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[0].Entries[1].Visibility)
	assert.Empty(t, merged[1].Entries)
	assert.Equal(t, "f2", merged[2].Label)

	assert.Empty(t, mergeBindGroupLayouts(nil, nil))
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{instanceCapacity: 128}
	for _, opt := range []RendererBuilderOption{
		WithInstanceCapacity(101),
		WithCullMode(wgpu.CullModeNone),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
	} {
		opt(r)
	}
	assert.Equal(t, 101, r.instanceCapacity)
	assert.Equal(t, wgpu.CullModeNone, r.cullMode)
	assert.Equal(t, MSAAOff, r.msaa)
	assert.True(t, r.forceFallbackAdapter)

	WithInstanceCapacity(0)(r)
	assert.Equal(t, 101, r.instanceCapacity)
}
