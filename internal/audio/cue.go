package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Cue streams decoded stereo samples, optionally looping.
type Cue struct {
	left, right []float32
	pos         int
	loop        bool
}

// LoadCue decodes the WAV at path, resampled to sampleRate.
func LoadCue(path string, sampleRate int, loop bool) (*Cue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	c := newCue(pcm, loop)
	if len(c.left) == 0 {
		return nil, fmt.Errorf("wav %q has no audio data", path)
	}
	return c, nil
}

// newCue splits interleaved 16-bit little-endian stereo PCM.
func newCue(pcm []byte, loop bool) *Cue {
	n := len(pcm) / 4
	c := &Cue{left: make([]float32, n), right: make([]float32, n), loop: loop}
	for i := 0; i < n; i++ {
		off := i * 4
		c.left[i] = float32(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768.0
		c.right[i] = float32(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) / 32768.0
	}
	return c
}

func (c *Cue) Fill(out [][]float32) {
	for i := range out[0] {
		var l, r float32
		if c.pos >= len(c.left) && c.loop {
			c.pos = 0
		}
		if c.pos < len(c.left) {
			l, r = c.left[c.pos], c.right[c.pos]
			c.pos++
		}
		out[0][i] = l
		if len(out) > 1 {
			out[1][i] = r
		}
	}
}
