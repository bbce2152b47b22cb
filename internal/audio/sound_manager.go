// Package audio plays the game's procedural sound cues through beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dodgeball/internal/core"
)

const (
	sampleRate            = beep.SampleRate(48000)
	speakerBufferDuration = 100 * time.Millisecond
	ambientVolume         = 0.5
)

// Sink consumes cues emitted by the game loop.
type Sink interface {
	HandleCue(c core.Cue)
	Cleanup()
}

// Nop is a Sink that ignores every cue. Used when audio is disabled or
// no output device is available.
type Nop struct{}

func (Nop) HandleCue(core.Cue) {}
func (Nop) Cleanup()           {}

// SoundManager plays cues on the default output device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ambient     *beep.Ctrl
	volume      float64
	initialized bool
}

// NewSoundManager creates an uninitialized sound manager.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the output device. volume is linear in [0, 1].
func (sm *SoundManager) Initialize(volume float64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	sm.volume = volume
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.ambient != nil {
		sm.ambient.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.ambient = nil
	sm.initialized = false
}

// HandleCue plays the sound for c.
func (sm *SoundManager) HandleCue(c core.Cue) {
	switch c {
	case core.CueAmbient:
		sm.EnsureAmbient()
	case core.CueAmbientStop:
		sm.StopAmbient()
	default:
		if s := sm.effect(c); s != nil {
			sm.play(s)
		}
	}
}

// effect builds a fresh one-shot streamer for c, or nil.
func (sm *SoundManager) effect(c core.Cue) beep.Streamer {
	return CreateCueSound(c, sampleRate, sm.volume)
}

// CreateCueSound returns the one-shot streamer for c at the given volume.
// Ambient cues have no one-shot sound and return nil.
func CreateCueSound(c core.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case core.CueRunStart:
		return CreateRunStartSound(rate, vol)
	case core.CueCountdownEnd:
		return CreateHornSound(rate, vol)
	case core.CueHit:
		return CreateHitSound(rate, vol)
	case core.CueLevelUp:
		return CreateLevelUpSound(rate, vol)
	case core.CueGameOver:
		return CreateGameOverSound(rate, vol)
	default:
		return nil
	}
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// EnsureAmbient starts the ambient loop if it is not already playing.
func (sm *SoundManager) EnsureAmbient() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.ambient != nil {
		sm.ambient.Paused = false
		return
	}
	gen := newVolume(NewAmbientGenerator(sampleRate), sm.volume*ambientVolume)
	sm.ambient = &beep.Ctrl{Streamer: gen}
	sm.mixer.Add(sm.ambient)
}

// StopAmbient pauses the ambient loop.
func (sm *SoundManager) StopAmbient() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.ambient == nil {
		return
	}

	speaker.Lock()
	sm.ambient.Paused = true
	speaker.Unlock()
}

// AmbientPlaying reports whether the ambient loop is audible.
func (sm *SoundManager) AmbientPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.ambient == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !sm.ambient.Paused
}
