package storage

import (
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/scene"
)

// Capture is a headless renderer that keeps every submitted frame.
type Capture struct {
	Frames []driver.Frame
	Scene  *scene.Commands
	Exited bool
}

func (c *Capture) SpawnScene(cmds scene.Commands) { c.Scene = &cmds }

func (c *Capture) Submit(f driver.Frame) { c.Frames = append(c.Frames, f) }

func (c *Capture) RequestExit() { c.Exited = true }
