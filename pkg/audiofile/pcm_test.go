package audiofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownmix(t *testing.T) {
	stereo := []float32{1, 0, 0.5, 0.5, -1, 1}
	assert.Equal(t, []float32{0.5, 0.5, 0}, downmix(stereo, 2))
	mono := []float32{1, 2}
	assert.Equal(t, mono, downmix(mono, 1))
}

func TestResample(t *testing.T) {
	in := []float32{0, 1, 0, -1}

	same := resample(in, 16000, 16000)
	assert.Equal(t, in, same)

	down := resample(in, 32000, 16000)
	assert.Len(t, down, 2)

	up := resample(in, 16000, 32000)
	assert.Len(t, up, 8)
	// Interpolated midpoint between 0 and 1.
	assert.InDelta(t, 0.5, up[1], 1e-6)
}

func TestInt16sToFloat32(t *testing.T) {
	out := int16sToFloat32([]int16{0, 16384, -32768})
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 0.5, out[1], 1e-6)
	assert.InDelta(t, -1, out[2], 1e-6)
}
