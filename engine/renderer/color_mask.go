package renderer

import "github.com/cogentcore/webgpu/wgpu"

// ColorMask selects which color channels a render pass writes.
type ColorMask int

const (
	// ColorMaskAll writes every channel; used when stereo is off.
	ColorMaskAll ColorMask = iota

	// ColorMaskRed writes only red; the left eye of a red/cyan anaglyph.
	ColorMaskRed

	// ColorMaskCyan writes green and blue; the right eye of a red/cyan anaglyph.
	ColorMaskCyan
)

// ColorMasks lists every mask, one pipeline is created per entry.
var ColorMasks = []ColorMask{ColorMaskAll, ColorMaskRed, ColorMaskCyan}

// WriteMask returns the WebGPU color write mask for m. Alpha is written only by ColorMaskAll.
func (m ColorMask) WriteMask() wgpu.ColorWriteMask {
	switch m {
	case ColorMaskRed:
		return wgpu.ColorWriteMaskRed
	case ColorMaskCyan:
		return wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskBlue
	default:
		return wgpu.ColorWriteMaskAll
	}
}

func (m ColorMask) String() string {
	switch m {
	case ColorMaskAll:
		return "all"
	case ColorMaskRed:
		return "red"
	case ColorMaskCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// pipelineKey names the box pipeline drawing with mask m.
func (m ColorMask) pipelineKey() string {
	return "box_" + m.String()
}
