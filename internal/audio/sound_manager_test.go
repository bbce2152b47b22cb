package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/dodgeball/internal/core"
)

// drain streams s to completion and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if math.IsNaN(buf[i][0]) || math.IsNaN(buf[i][1]) {
				t.Fatalf("NaN sample at %d", total+i)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("streamer did not finish within %d samples", limit)
	return total, peak
}

// TestSoundManagerGracefulDegradation verifies cues don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cue handling panicked without initialization: %v", r)
		}
	}()

	for c := core.CueRunStart; c <= core.CueAmbientStop; c++ {
		sm.HandleCue(c)
	}
	if sm.AmbientPlaying() {
		t.Error("ambient should not play without a device")
	}
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies the manager can start and stop
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// Speaker initialization fails without an audio device; audio is optional
	if err := sm.Initialize(0.5); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	defer sm.Cleanup()

	if err := sm.Initialize(0.5); err != nil {
		t.Errorf("second Initialize should be a no-op, got %v", err)
	}

	sm.HandleCue(core.CueAmbient)
	if !sm.AmbientPlaying() {
		t.Error("ambient should play after CueAmbient")
	}
	sm.HandleCue(core.CueAmbient)
	sm.HandleCue(core.CueAmbientStop)
	if sm.AmbientPlaying() {
		t.Error("ambient should stop after CueAmbientStop")
	}
	sm.HandleCue(core.CueHit)
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	s.HandleCue(core.CueHit)
	s.Cleanup()
}

func TestCueSoundsAreFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	limit := rate.N(5 * time.Second)

	for c := core.CueRunStart; c <= core.CueGameOver; c++ {
		s := CreateCueSound(c, rate, 1)
		if s == nil {
			t.Fatalf("no sound for %s", c)
		}
		n, peak := drain(t, s, limit)
		if n == 0 {
			t.Errorf("%s produced no samples", c)
		}
		if peak == 0 {
			t.Errorf("%s is silent", c)
		}
		if peak > 1.5 {
			t.Errorf("%s peak %.2f too loud", c, peak)
		}
	}

	for _, c := range []core.Cue{core.CueAmbient, core.CueAmbientStop} {
		if CreateCueSound(c, rate, 1) != nil {
			t.Errorf("%s should have no one-shot sound", c)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	_, peak := drain(t, CreateHitSound(rate, 0), rate.N(time.Second))
	if peak != 0 {
		t.Errorf("peak = %.3f, want silence", peak)
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 250 * time.Millisecond
	n, _ := drain(t, NewOscillator(440, d, WaveSquare, rate), rate.N(time.Second))
	if n != rate.N(d) {
		t.Errorf("oscillator produced %d samples, want %d", n, rate.N(d))
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d of %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %.3f, want 0 during attack", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain sample = %.3f, want 1", mid)
	}
	if last := buf[n-1][0]; last >= 0.2 {
		t.Errorf("last sample = %.3f, want faded", last)
	}
}

func TestAmbientGeneratorIsEndless(t *testing.T) {
	g := NewAmbientGenerator(beep.SampleRate(8000))
	buf := make([][2]float64, 1024)
	for i := 0; i < 50; i++ {
		n, ok := g.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("ambient stopped after %d buffers", i)
		}
	}
	if g.Err() != nil {
		t.Error("ambient should never report an error")
	}
}
