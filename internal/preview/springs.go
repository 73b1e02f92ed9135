package preview

import "github.com/charmbracelet/harmonica"

// bars eases each displayed amplitude toward its latest value.
type bars struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newBars(fps int) bars {
	return bars{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.8)}
}

func (b *bars) resize(n int) {
	if len(b.pos) == n {
		return
	}
	b.pos = make([]float64, n)
	b.vel = make([]float64, n)
}

func (b *bars) update(targets []float32) []float64 {
	b.resize(len(targets))
	for i, target := range targets {
		b.pos[i], b.vel[i] = b.spring.Update(b.pos[i], b.vel[i], float64(target))
	}
	return b.pos
}
