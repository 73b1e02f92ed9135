package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/harmonia/internal/driver"
)

type FrameData struct {
	Time           float32    `json:"time"`
	State          string     `json:"state,omitempty"`
	Amplitudes     []float32  `json:"amplitudes"`
	ObjectHeight   float32    `json:"object_height"`
	CameraPosition [3]float32 `json:"camera_position"`
	LookTarget     [3]float32 `json:"look_target"`
	FocusDistance  float32    `json:"focus_distance"`
	Aperture       float32    `json:"aperture"`
}

func NewFrameData(f driver.Frame, state string) FrameData {
	return FrameData{
		Time:           f.Time,
		State:          state,
		Amplitudes:     f.Amplitudes,
		ObjectHeight:   f.ObjectHeight,
		CameraPosition: f.CameraPosition,
		LookTarget:     f.LookTarget,
		FocusDistance:  f.FocusDistance,
		Aperture:       f.Aperture,
	}
}

// ExportJSON writes frames as an indented JSON array.
func ExportJSON(w io.Writer, frames []driver.Frame) error {
	data := make([]FrameData, len(frames))
	for i, f := range frames {
		data[i] = NewFrameData(f, "")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportFrame writes a single frame, as used for deterministic captures.
func ExportFrame(w io.Writer, f driver.Frame, state string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewFrameData(f, state))
}
