package config

// Pending is a snapshot that may still be loading. Poll never blocks, so a
// frame loop can check it once per tick.
type Pending struct {
	done chan result
	res  *result
}

type result struct {
	snap *Snapshot
	err  error
}

// LoadAsync starts loading both files in the background.
func LoadAsync(settingsPath, oscillatorPath string) *Pending {
	p := &Pending{done: make(chan result, 1)}
	go func() {
		snap, err := Load(settingsPath, oscillatorPath)
		p.done <- result{snap: snap, err: err}
	}()
	return p
}

// Ready wraps an already decoded snapshot.
func Ready(snap *Snapshot) *Pending {
	p := &Pending{done: make(chan result, 1)}
	p.done <- result{snap: snap}
	return p
}

// Poll reports the snapshot once loading has finished. Before that it
// returns (nil, false, nil). A load error is returned on every later poll.
func (p *Pending) Poll() (*Snapshot, bool, error) {
	if p.res == nil {
		select {
		case r := <-p.done:
			p.res = &r
		default:
			return nil, false, nil
		}
	}
	if p.res.err != nil {
		return nil, false, p.res.err
	}
	return p.res.snap, true, nil
}
