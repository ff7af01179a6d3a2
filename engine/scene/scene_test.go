package scene

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
)

func TestGenerateObjectCounts(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{ModeSingleBox, 1},
		{ModeRandomBoxes, 100},
		{ModeBlackHole, 101},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s := Generate(tt.mode, 2024, WithComputeWorkers(2))
			defer s.Close()
			assert.Equal(t, tt.want, s.Len())
			assert.Len(t, s.Transforms(), tt.want)
			assert.Equal(t, tt.mode, s.Mode())
		})
	}
}

func TestModeSwitchResetsCount(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(2, 16, time.Second)
	defer pool.Stop()

	var s Scene
	for _, mode := range []Mode{ModeBlackHole, ModeSingleBox, ModeRandomBoxes, ModeBlackHole, ModeSingleBox} {
		if s != nil {
			s.Close()
		}
		s = Generate(mode, 7, WithComputePool(pool))
		s.Update(0.016, 0.016, true)
	}
	assert.Equal(t, 1, s.Len())
}

func TestSingleBoxIsLargeAtOrigin(t *testing.T) {
	s := Generate(ModeSingleBox, 0)
	defer s.Close()

	m := s.Transforms()[0]
	assert.Equal(t, mgl32.Vec3{}, common.Translation(m))
	assert.Equal(t, float32(SingleBoxScale), common.MaxScale(m))
	assert.Nil(t, s.Simulator())
}

func TestRandomBoxesWithinBounds(t *testing.T) {
	s := Generate(ModeRandomBoxes, 2024)
	defer s.Close()

	for i, m := range s.Transforms() {
		pos := common.Translation(m)
		for axis := range 3 {
			assert.LessOrEqual(t, pos[axis], float32(RandomBoxSpread/2), "box %d", i)
			assert.GreaterOrEqual(t, pos[axis], float32(-RandomBoxSpread/2), "box %d", i)
		}
		sx, sy, sz := mgl32.Extract3DScale(m)
		assert.InDelta(t, sx, sy, 1e-4)
		assert.InDelta(t, sx, sz, 1e-4)
		assert.GreaterOrEqual(t, sx, float32(1)-1e-4)
		assert.LessOrEqual(t, sx, float32(RandomBoxMaxSize)+1e-4)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, mode := range []Mode{ModeRandomBoxes, ModeBlackHole} {
		a := Generate(mode, 99, WithComputeWorkers(3))
		b := Generate(mode, 99, WithComputeWorkers(1))

		for frame := range 50 {
			tm := float32(frame) * 0.02
			a.Update(0.02, tm, true)
			b.Update(0.02, tm, true)
		}
		assert.Equal(t, a.Transforms(), b.Transforms(), mode.String())

		c := Generate(mode, 100)
		assert.NotEqual(t, a.Transforms(), c.Transforms(), mode.String())

		a.Close()
		b.Close()
		c.Close()
	}
}

func TestBoxAnimationToggle(t *testing.T) {
	s := Generate(ModeRandomBoxes, 3, WithComputeWorkers(2))
	defer s.Close()

	before := append([]mgl32.Mat4(nil), s.Transforms()...)
	s.Update(0.5, 0.5, false)
	assert.Equal(t, before, s.Transforms())

	s.Update(0.5, 1, true)
	for i, m := range s.Transforms() {
		assert.False(t, m.ApproxEqualThreshold(before[i], 1e-6), "box %d did not spin", i)
		// Spinning about the box's own axis keeps it in place.
		assert.True(t, common.Translation(m).ApproxEqualThreshold(common.Translation(before[i]), 1e-4))
	}
}

func TestBlackHoleUpdateMatchesSimulator(t *testing.T) {
	s := Generate(ModeBlackHole, 11, WithComputeWorkers(4))
	defer s.Close()

	sim := s.Simulator()
	require.NotNil(t, sim)
	require.Equal(t, 100, sim.Len())

	s.Update(0.016, 1.5, false)

	tr := s.Transforms()
	assert.Equal(t, sim.CentralTransform(1.5), tr[0])
	for i := range sim.Len() {
		assert.Equal(t, sim.Transform(i, 1.5), tr[i+1])
	}
	assert.GreaterOrEqual(t, s.Respawned(), 0)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("blackhole")
	assert.True(t, ok)
	assert.Equal(t, ModeBlackHole, m)

	m, ok = ParseMode("boxes")
	assert.True(t, ok)
	assert.Equal(t, ModeRandomBoxes, m)

	_, ok = ParseMode("teapot")
	assert.False(t, ok)
}
