// Package storage keeps captured show timelines on disk. Each capture is a
// directory holding metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/oscillator"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrNotFound = errors.New("storage: capture not found")

// fixed columns ahead of the amplitudes
var frameHeader = []string{"time", "height", "cam_x", "cam_y", "cam_z", "look_y", "focus", "aperture"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Preset       string    `json:"preset,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	FPS          int       `json:"fps"`
	Frames       int       `json:"frames"`
	Duration     float32   `json:"duration"`
	EndTime      float32   `json:"end_time"`
	Coefficients int       `json:"coefficients"`
	Bytes        int64     `json:"bytes"`

	AnimationSpeed float32           `json:"animation_speed"`
	Oscillators    oscillator.Params `json:"oscillators,omitempty"`
}

// Describe is a one-line human summary used by listings.
func (m RunMetadata) Describe(now time.Time) string {
	name := m.Preset
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s  %-8s %5d frames  %6.1fs  %8s  %s",
		m.ID[:min(8, len(m.ID))], name, m.Frames, m.Duration, humanize.Bytes(uint64(m.Bytes)),
		humanize.RelTime(m.Timestamp, now, "ago", "from now"))
}

// Save writes frames and their metadata under a fresh ID. The ID, frame
// count, duration and size fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, frames []driver.Frame) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)
	if len(frames) > 0 {
		meta.Duration = frames[len(frames)-1].Time
		meta.Coefficients = len(frames[0].Amplitudes)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	n, err := writeFrames(filepath.Join(runDir, framesFile), frames)
	if err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}
	meta.Bytes = n

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeFrames(path string, frames []driver.Frame) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	coeffs := 0
	if len(frames) > 0 {
		coeffs = len(frames[0].Amplitudes)
	}
	header := append([]string(nil), frameHeader...)
	for i := range coeffs {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return 0, err
	}

	for _, fr := range frames {
		row := make([]string, 0, len(header))
		for _, v := range []float32{
			fr.Time, fr.ObjectHeight,
			fr.CameraPosition[0], fr.CameraPosition[1], fr.CameraPosition[2],
			fr.LookTarget[1], fr.FocusDistance, fr.Aperture,
		} {
			row = append(row, format(v))
		}
		for i := range coeffs {
			v := float32(0)
			if i < len(fr.Amplitudes) {
				v = fr.Amplitudes[i]
			}
			row = append(row, format(v))
		}
		if err := w.Write(row); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func format(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 32)
}

// List returns every readable capture, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Resolve accepts a full ID or a unique prefix of one.
func (s *Store) Resolve(prefix string) (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	match := ""
	for _, r := range runs {
		if r.ID == prefix {
			return r.ID, nil
		}
		if len(prefix) > 0 && len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("ambiguous capture id %q", prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}

func (s *Store) LoadFrames(runID string) ([]driver.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []driver.Frame{}, nil
	}

	fixed := len(frameHeader)
	frames := make([]driver.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < fixed {
			return nil, fmt.Errorf("%s line %d: %d columns, want at least %d", framesFile, line+2, len(record), fixed)
		}
		vals := make([]float32, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
			}
			vals[j] = float32(v)
		}
		frames = append(frames, driver.Frame{
			Time:           vals[0],
			ObjectHeight:   vals[1],
			CameraPosition: mgl32.Vec3{vals[2], vals[3], vals[4]},
			LookTarget:     mgl32.Vec3{0, vals[5], 0},
			FocusDistance:  vals[6],
			Aperture:       vals[7],
			Amplitudes:     vals[fixed:],
		})
	}
	return frames, nil
}
