package audio

import "math"

// padChord is Gm7 add9: G2, Bb2, D3, F3, A3.
var padChord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Pad is the built-in ambient drone played when no cue file is configured:
// detuned triangle voices, a one-pole low-pass and a cross-fed delay.
type Pad struct {
	sampleRate  float64
	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	cutoff      float64
	volume      float64
}

func NewPad(sampleRate int) *Pad {
	delayLen := int(float64(sampleRate) * 0.6)
	return &Pad{
		sampleRate: float64(sampleRate),
		delayLine:  [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		cutoff:     450,
		volume:     0.25,
	}
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (p *Pad) Fill(out [][]float32) {
	dt := 1.0 / p.sampleRate
	g := 1.0 / float64(len(padChord))

	for i := range out[0] {
		var l, r float64
		for j, f := range padChord {
			breath := 0.7 + 0.3*math.Sin(p.time*0.2+float64(j))
			l += triangle(p.time*f*0.999) * g * breath
			r += triangle(p.time*f*1.001) * g * breath
		}

		p.filterState[0] = lpf(l, p.cutoff, dt, p.filterState[0])
		p.filterState[1] = lpf(r, p.cutoff, dt, p.filterState[1])

		dl := p.delayLine[0][p.delayHead]
		dr := p.delayLine[1][p.delayHead]
		mixL := p.filterState[0] + dl*0.3 + dr*0.1
		mixR := p.filterState[1] + dr*0.3 + dl*0.1
		p.delayLine[0][p.delayHead] = mixL * 0.7
		p.delayLine[1][p.delayHead] = mixR * 0.7
		p.delayHead = (p.delayHead + 1) % len(p.delayLine[0])

		out[0][i] = float32(mixL * p.volume)
		if len(out) > 1 {
			out[1][i] = float32(mixR * p.volume)
		}
		p.time += dt
	}
}
