package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float32

func (c constSource) Fill(out [][]float32) {
	for ch := range out {
		for i := range out[ch] {
			out[ch][i] = float32(c)
		}
	}
}

func buffers(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func TestFader_UnityUntilStarted(t *testing.T) {
	f := NewFader()
	for i := 0; i < 100; i++ {
		assert.Equal(t, float32(1), f.Next())
	}
	assert.False(t, f.Silent())
}

func TestFader_Linear(t *testing.T) {
	f := NewFader()
	f.Start(time.Second, 100)

	prev := f.Next()
	assert.Equal(t, float32(1), prev)
	for i := 1; i < 50; i++ {
		prev = f.Next()
	}
	assert.InDelta(t, 0.51, prev, 1e-3)

	for i := 0; i < 60; i++ {
		f.Next()
	}
	assert.True(t, f.Silent())
	assert.Equal(t, float32(0), f.Next())
}

func TestFader_ZeroDuration(t *testing.T) {
	f := NewFader()
	f.Start(0, 44100)
	assert.Equal(t, float32(0), f.Next())
	assert.True(t, f.Silent())
}

func TestPad_Bounded(t *testing.T) {
	p := NewPad(SampleRate)
	out := buffers(BufferSize)
	energy := 0.0
	for b := 0; b < 50; b++ {
		p.Fill(out)
		for ch := range out {
			for _, v := range out[ch] {
				require.False(t, math.IsNaN(float64(v)))
				require.LessOrEqual(t, math.Abs(float64(v)), 1.0)
				energy += float64(v * v)
			}
		}
	}
	assert.Greater(t, energy, 0.0)
}

func TestCue_DecodeAndLoop(t *testing.T) {
	pcm := make([]byte, 8)
	binary.LittleEndian.PutUint16(pcm[0:], uint16(16384))
	binary.LittleEndian.PutUint16(pcm[2:], uint16(0xC000)) // -16384
	binary.LittleEndian.PutUint16(pcm[4:], 0)
	binary.LittleEndian.PutUint16(pcm[6:], uint16(32767))

	c := newCue(pcm, true)
	out := buffers(3)
	c.Fill(out)
	assert.Equal(t, []float32{0.5, 0, 0.5}, out[0])
	assert.InDelta(t, -0.5, out[1][0], 1e-6)

	once := newCue(pcm, false)
	out = buffers(3)
	once.Fill(out)
	assert.Equal(t, float32(0), out[0][2])
}

func TestPlayer_ProcessAppliesFade(t *testing.T) {
	p := NewPlayer(nil)
	out := buffers(4)
	p.process(out)
	assert.Equal(t, []float32{0, 0, 0, 0}, out[0])

	p.source = constSource(0.8)
	p.process(out)
	assert.Equal(t, []float32{0.8, 0.8, 0.8, 0.8}, out[1])

	p.fader.Start(time.Duration(float64(time.Second)*4/SampleRate), SampleRate)
	p.process(out)
	assert.Equal(t, float32(0.8), out[0][0])
	assert.Less(t, out[0][3], out[0][1])

	p.process(out)
	assert.Equal(t, []float32{0, 0, 0, 0}, out[0])
}
