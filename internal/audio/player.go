// Package audio is the sound side of the show: it starts the cue when the
// scene spawns and fades it out ahead of the end.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/harmonia/internal/scene"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Source renders stereo frames into out[0] (left) and out[1] (right).
type Source interface {
	Fill(out [][]float32)
}

// Player mixes one Source through a Fader to the default output device.
type Player struct {
	stream *portaudio.Stream
	log    *slog.Logger

	mu     sync.Mutex
	source Source
	fader  *Fader
}

func NewPlayer(log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{log: log, fader: NewFader()}
}

// Play opens the output stream and starts the cue. Device failures are
// logged and the show continues silently.
func (p *Player) Play(cue scene.AudioCue) {
	src := p.loadSource(cue)

	p.mu.Lock()
	p.source = src
	p.fader = NewFader()
	p.mu.Unlock()

	if p.stream != nil {
		return
	}
	if err := portaudio.Initialize(); err != nil {
		p.log.Error("audio init failed", "error", err)
		return
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.process)
	if err != nil {
		p.log.Error("audio stream open failed", "error", err)
		portaudio.Terminate()
		return
	}
	if err := stream.Start(); err != nil {
		p.log.Error("audio stream start failed", "error", err)
		stream.Close()
		portaudio.Terminate()
		return
	}
	p.stream = stream
	p.log.Info("audio started", "cue", cue.Path, "sample_rate", SampleRate)
}

func (p *Player) loadSource(cue scene.AudioCue) Source {
	if cue.Path == "" {
		return NewPad(SampleRate)
	}
	c, err := LoadCue(cue.Path, SampleRate, cue.Loop)
	if err != nil {
		p.log.Error("audio cue unavailable, using pad", "path", cue.Path, "error", err)
		return NewPad(SampleRate)
	}
	return c
}

// FadeOut ramps the output to silence over d.
func (p *Player) FadeOut(d time.Duration) {
	p.mu.Lock()
	p.fader.Start(d, SampleRate)
	p.mu.Unlock()
	p.log.Info("audio fade", "duration", d)
}

func (p *Player) process(out [][]float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		for ch := range out {
			clear(out[ch])
		}
		return
	}
	p.source.Fill(out)
	for i := range out[0] {
		g := p.fader.Next()
		for ch := range out {
			out[ch][i] *= g
		}
	}
}

func (p *Player) Close() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		portaudio.Terminate()
		p.stream = nil
	}
}
