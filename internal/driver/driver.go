package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/camera"
	"github.com/san-kum/harmonia/internal/config"
	"github.com/san-kum/harmonia/internal/lifecycle"
	"github.com/san-kum/harmonia/internal/oscillator"
	"github.com/san-kum/harmonia/internal/scene"
)

// ErrHalted is returned by Tick after the configuration failed to load.
var ErrHalted = errors.New("driver: halted on configuration error")

// Frame is everything the render boundary needs for one tick.
type Frame struct {
	Time           float32
	Amplitudes     []float32
	ObjectHeight   float32
	CameraPosition mgl32.Vec3
	LookTarget     mgl32.Vec3
	FocusDistance  float32
	Aperture       float32
}

// Source yields the configuration snapshot once it has loaded.
type Source interface {
	Poll() (*config.Snapshot, bool, error)
}

type Renderer interface {
	SpawnScene(cmds scene.Commands)
	Submit(f Frame)
	RequestExit()
}

type Audio interface {
	Play(cue scene.AudioCue)
	FadeOut(d time.Duration)
}

// NopAudio discards audio commands.
type NopAudio struct{}

func (NopAudio) Play(scene.AudioCue)   {}
func (NopAudio) FadeOut(time.Duration) {}

type Driver struct {
	source   Source
	renderer Renderer
	audio    Audio
	clock    *Clock
	machine  *lifecycle.Machine
	snap     *config.Snapshot
	log      *slog.Logger

	// freezeOverride wins over the settings' frozen_time.
	freezeOverride *float32
}

type Option func(*Driver)

// WithFrozenTime runs the show at a fixed instant.
func WithFrozenTime(t float32) Option {
	return func(d *Driver) { d.freezeOverride = &t }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

func WithAudio(a Audio) Option {
	return func(d *Driver) { d.audio = a }
}

func New(source Source, renderer Renderer, opts ...Option) *Driver {
	d := &Driver{
		source:   source,
		renderer: renderer,
		audio:    NopAudio{},
		clock:    NewClock(),
		machine:  lifecycle.New(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.freezeOverride != nil {
		d.clock.Freeze(*d.freezeOverride)
	}
	return d
}

func (d *Driver) State() lifecycle.State { return d.machine.State() }

func (d *Driver) Now() float32 { return d.clock.Now() }

// Snapshot returns the loaded configuration, or nil while loading.
func (d *Driver) Snapshot() *config.Snapshot { return d.snap }

func (d *Driver) Done() bool { return d.machine.State() == lifecycle.Terminated }

// Tick advances the show by dt. It returns an error only when the
// configuration failed to load; the show then stays in Building.
func (d *Driver) Tick(dt time.Duration) error {
	if d.Done() {
		return nil
	}
	if err := d.machine.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, err)
	}

	d.clock.Advance(dt)

	if d.snap == nil {
		snap, ok, err := d.source.Poll()
		if err != nil {
			d.machine.Halt(err)
			d.log.Error("configuration failed to load", "error", err)
			return fmt.Errorf("%w: %w", ErrHalted, err)
		}
		if ok {
			d.adopt(snap)
		}
	}

	t := d.clock.Now()
	var timing *lifecycle.Timing
	if d.snap != nil {
		timing = &lifecycle.Timing{EndTime: d.snap.Settings.EndTime}
	}

	for _, e := range d.machine.Step(t, timing) {
		d.apply(e)
	}

	if d.machine.State().Animating() {
		d.renderer.Submit(d.frame(t))
	}
	return nil
}

func (d *Driver) adopt(snap *config.Snapshot) {
	d.snap = snap
	if d.freezeOverride == nil && snap.Settings.FrozenTime != nil {
		d.clock.Freeze(*snap.Settings.FrozenTime)
	}
	d.log.Info("configuration loaded",
		"coefficients", len(snap.Oscillators),
		"end_time", snap.Settings.EndTime,
		"frozen", d.clock.Frozen(),
	)
}

func (d *Driver) apply(e lifecycle.Effect) {
	d.log.Info("lifecycle", "effect", e.Kind, "t", e.At, "state", d.machine.State())
	switch e.Kind {
	case lifecycle.SpawnScene:
		cmds := scene.Build(d.snap.Settings)
		d.renderer.SpawnScene(cmds)
		d.audio.Play(cmds.Audio)
	case lifecycle.FadeOut:
		d.audio.FadeOut(e.Fade)
	case lifecycle.Exit:
		d.renderer.RequestExit()
	}
}

func (d *Driver) frame(t float32) Frame {
	s := d.snap.Settings
	pose := camera.Compute(t, s)
	return Frame{
		Time:           t,
		Amplitudes:     oscillator.Compute(t, d.snap.Oscillators, s.AnimationSpeed, s.HarmonicSpinupTime),
		ObjectHeight:   pose.ObjectHeight,
		CameraPosition: pose.Position,
		LookTarget:     pose.Target,
		FocusDistance:  pose.FocusDistance,
		Aperture:       s.FStop,
	}
}

// Run ticks at fps until the show terminates, a tick fails or ctx is
// cancelled. With pace false the ticks run back to back, which is how
// captures are produced. A frozen clock never reaches the end time, so
// frozen shows only stop through ctx.
func (d *Driver) Run(ctx context.Context, fps int, pace bool) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	dt := time.Second / time.Duration(fps)

	var ticker *time.Ticker
	if pace {
		ticker = time.NewTicker(dt)
		defer ticker.Stop()
	}

	for !d.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.Tick(dt); err != nil {
			return err
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
	return nil
}
