// Package audio plays the looping soundtrack. Playback is best effort: when
// the file or the audio device is unavailable the session simply runs silent.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"chosenoffset.com/tilewalk/internal/config"
)

const synthRate = beep.SampleRate(44100)

// Soundtrack is a looping track on the default speaker. The zero value is a
// silent track, and every method is safe on it.
type Soundtrack struct {
	mu     sync.Mutex
	ctrl   *beep.Ctrl
	source beep.StreamSeekCloser
	logger *log.Logger
}

// Start opens path and starts looping it. A missing or undecodable file means
// no music, unless cfg.FallbackTune asks for a generated tune instead.
// Failures are logged at debug level and never returned.
func Start(cfg config.AudioConfig, path string, logger *log.Logger) *Soundtrack {
	if logger == nil {
		logger = log.Default()
	}
	s := &Soundtrack{logger: logger}
	if !cfg.Enabled {
		logger.Debug("Audio disabled")
		return s
	}

	var stream beep.Streamer
	format := beep.Format{SampleRate: synthRate, NumChannels: 2, Precision: 2}

	source, f, err := Open(path)
	switch {
	case err != nil && !cfg.FallbackTune:
		logger.Debug("Soundtrack unavailable, running silent", "path", path, "error", err)
		return s
	case err != nil:
		logger.Debug("Soundtrack unavailable, using generated tune", "path", path, "error", err)
		stream = NewMelody(synthRate)
	default:
		s.source = source
		format = f
		stream = beep.Loop(-1, source)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		logger.Debug("Speaker unavailable, running silent", "error", err)
		s.closeSource()
		return s
	}

	s.ctrl = Build(stream, cfg.Volume)
	speaker.Play(s.ctrl)
	logger.Debug("Soundtrack started", "rate", int(format.SampleRate))
	return s
}

// Open decodes a WAV file for looping.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if path == "" {
		return nil, beep.Format{}, fmt.Errorf("no soundtrack configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open soundtrack %s: %w", path, err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode soundtrack %s: %w", path, err)
	}
	return stream, format, nil
}

// Build wraps stream in a volume stage and a pause control. Volume is in
// halvings, so -1 plays at half volume.
func Build(stream beep.Streamer, volume float64) *beep.Ctrl {
	return &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   volume,
	}}
}

// ToggleMute pauses or resumes playback and reports whether it is now muted.
func (s *Soundtrack) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return true
	}
	speaker.Lock()
	s.ctrl.Paused = !s.ctrl.Paused
	paused := s.ctrl.Paused
	speaker.Unlock()
	return paused
}

// Playing reports whether the track is audible.
func (s *Soundtrack) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !s.ctrl.Paused
}

// Close stops playback and releases the file.
func (s *Soundtrack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		speaker.Clear()
		s.ctrl = nil
	}
	s.closeSource()
}

func (s *Soundtrack) closeSource() {
	if s.source == nil {
		return
	}
	if err := s.source.Close(); err != nil && s.logger != nil {
		s.logger.Debug("Failed to close soundtrack", "error", err)
	}
	s.source = nil
}

// Melody is an endless arpeggio used when no soundtrack file can
// be played.
type Melody struct {
	sr    beep.SampleRate
	pos   int
	phase float64
	notes []float64
	step  int // samples per note
}

// NewMelody creates a melody generator at sample rate sr.
func NewMelody(sr beep.SampleRate) *Melody {
	return &Melody{
		sr:    sr,
		notes: []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63}, // C major arpeggio
		step:  sr.N(time.Millisecond * 250),
	}
}

// Stream fills samples with the arpeggio. It never runs out.
func (m *Melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := m.notes[(m.pos/m.step)%len(m.notes)]
		inNote := m.pos % m.step

		// Short fade at both ends of each note to avoid clicks
		env := 1.0
		fade := m.step / 10
		if inNote < fade {
			env = float64(inNote) / float64(fade)
		} else if inNote > m.step-fade {
			env = float64(m.step-inNote) / float64(fade)
		}

		sample := 0.12 * env * (math.Sin(2*math.Pi*m.phase) + 0.3*math.Sin(6*math.Pi*m.phase))
		samples[i][0] = sample
		samples[i][1] = sample

		m.phase += note / float64(m.sr)
		m.phase -= math.Floor(m.phase)
		m.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (m *Melody) Err() error {
	return nil
}
