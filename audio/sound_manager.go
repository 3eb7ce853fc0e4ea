package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	blipVolume = 0.2
)

// Cue names a feedback sound
type Cue int

const (
	CueAdd Cue = iota
	CueDelete
	CueSave
	CueGrow
	CueError
)

func (c Cue) String() string {
	switch c {
	case CueAdd:
		return "add"
	case CueDelete:
		return "delete"
	case CueSave:
		return "save"
	case CueGrow:
		return "grow"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// tone is one blip of a cue; freq 0 is a pause
type tone struct {
	freq     float64
	duration time.Duration
}

var cueTones = map[Cue][]tone{
	CueAdd:    {{660, 60 * time.Millisecond}, {880, 60 * time.Millisecond}},
	CueDelete: {{520, 60 * time.Millisecond}, {330, 90 * time.Millisecond}},
	CueSave:   {{880, 40 * time.Millisecond}, {0, 30 * time.Millisecond}, {880, 40 * time.Millisecond}},
	CueGrow:   {{220, 120 * time.Millisecond}},
	CueError:  {{140, 150 * time.Millisecond}},
}

// SoundManager plays short blips through a single mixer
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker, failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close, clearing the mixer silences it
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := CueStreamer(sampleRate, cue)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// CueStreamer builds the finite streamer for a cue, nil for unknown cues
func CueStreamer(sr beep.SampleRate, cue Cue) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		n := sr.N(t.duration)
		if t.freq == 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		parts = append(parts, beep.Take(n, NewBlipGenerator(sr, t.freq, n)))
	}
	return beep.Seq(parts...)
}

// BlipGenerator is a sine tone under a short attack/release envelope
type BlipGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewBlipGenerator creates a blip lasting samples frames
func NewBlipGenerator(sr beep.SampleRate, freq float64, samples int) *BlipGenerator {
	return &BlipGenerator{
		sr:      sr,
		freq:    freq,
		samples: samples,
	}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := blipVolume * g.envelope() * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BlipGenerator) Err() error {
	return nil
}

// envelope ramps in and out over 5ms to avoid clicks
func (g *BlipGenerator) envelope() float64 {
	ramp := float64(g.sr.N(5 * time.Millisecond))
	if ramp <= 0 || g.samples <= 0 {
		return 1
	}
	in := float64(g.pos) / ramp
	out := float64(g.samples-g.pos) / ramp
	return math.Max(0, math.Min(1, math.Min(in, out)))
}
