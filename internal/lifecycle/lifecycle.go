package lifecycle

import (
	"fmt"
	"time"
)

// FadeLead is how long before the end time the audio fade starts. The fade
// lasts exactly this long.
const FadeLead = 5 * time.Second

type State int

const (
	Building State = iota
	Running
	Quitting
	Terminated
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Running:
		return "running"
	case Quitting:
		return "quitting"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Animating reports whether frames are produced in this state.
func (s State) Animating() bool { return s == Running || s == Quitting }

type EffectKind int

const (
	SpawnScene EffectKind = iota
	FadeOut
	Exit
)

func (k EffectKind) String() string {
	switch k {
	case SpawnScene:
		return "spawn_scene"
	case FadeOut:
		return "fade_out"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// Effect is a one-shot command for the render and audio boundary.
type Effect struct {
	Kind EffectKind
	At   float32
	// Fade is set for FadeOut.
	Fade time.Duration
}

// Timing carries what the machine needs from the loaded settings.
type Timing struct {
	EndTime float32
}

func (tm Timing) fadeStart() float32 {
	return tm.EndTime - float32(FadeLead.Seconds())
}

// Machine is the process-wide lifecycle. It is not safe for concurrent use;
// the frame loop owns it.
type Machine struct {
	state State
	err   error
}

func New() *Machine { return &Machine{state: Building} }

func (m *Machine) State() State { return m.state }

// Err returns the configuration error passed to Halt, if any.
func (m *Machine) Err() error { return m.err }

// Halt pins a Building machine in place after a configuration error.
func (m *Machine) Halt(err error) {
	if m.state == Building && m.err == nil {
		m.err = err
	}
}

// Step advances the machine to time t. A nil timing means the configuration
// has not finished loading. Within one tick the effects are ordered spawn,
// fade, exit; a late load can emit all three at once.
func (m *Machine) Step(t float32, timing *Timing) []Effect {
	if m.err != nil || timing == nil || m.state == Terminated {
		return nil
	}

	var effects []Effect
	if m.state == Building {
		m.state = Running
		effects = append(effects, Effect{Kind: SpawnScene, At: t})
	}

	if m.state == Running && t > timing.fadeStart() {
		m.state = Quitting
		effects = append(effects, Effect{Kind: FadeOut, At: t, Fade: FadeLead})
	}
	if m.state == Quitting && t > timing.EndTime {
		m.state = Terminated
		effects = append(effects, Effect{Kind: Exit, At: t})
	}
	return effects
}
