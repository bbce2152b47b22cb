package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Effect durations.
const (
	runStartNoteDuration = 90 * time.Millisecond
	hornDuration         = 700 * time.Millisecond
	hitDuration          = 180 * time.Millisecond
	levelUpNoteDuration  = 80 * time.Millisecond
	gameOverNoteDuration = 260 * time.Millisecond

	defaultAttack  = 5 * time.Millisecond
	defaultRelease = 40 * time.Millisecond
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rnd      *rand.Rand
}

// NewOscillator creates a finite oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rnd:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		v := wave(o.wave, o.phase, o.rnd)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func wave(w WaveType, phase float64, rnd *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rnd.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s so it fades in over attack and out over release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped oscillator with the default attack and release.
func tone(freq float64, d time.Duration, w WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, w, rate), d, defaultAttack, defaultRelease, rate)
}

// CreateRunStartSound plays two short rising notes.
func CreateRunStartSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(523.25, runStartNoteDuration, WaveSquare, rate),
		tone(783.99, runStartNoteDuration, WaveSquare, rate),
	), vol*0.4)
}

// CreateHornSound plays the start-of-play horn: a fifth on detuned saws.
func CreateHornSound(rate beep.SampleRate, vol float64) beep.Streamer {
	shape := func(freq float64) beep.Streamer {
		osc := NewOscillator(freq, hornDuration, WaveSaw, rate)
		return NewEnvelope(osc, hornDuration, 30*time.Millisecond, 250*time.Millisecond, rate)
	}
	return newVolume(beep.Mix(
		newVolume(shape(220), 0.5),
		newVolume(shape(330), 0.35),
		newVolume(shape(221.5), 0.15),
	), vol)
}

// CreateHitSound plays a noise burst over a low thud.
func CreateHitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(1, hitDuration, WaveNoise, rate), hitDuration, 2*time.Millisecond, 150*time.Millisecond, rate)
	thud := tone(90, hitDuration, WaveSine, rate)
	return newVolume(beep.Mix(
		newVolume(noise, 0.4),
		newVolume(thud, 0.6),
	), vol)
}

// CreateLevelUpSound plays a rising major arpeggio.
func CreateLevelUpSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(659.25, levelUpNoteDuration, WaveSine, rate),
		tone(830.61, levelUpNoteDuration, WaveSine, rate),
		tone(987.77, levelUpNoteDuration, WaveSine, rate),
		tone(1318.51, levelUpNoteDuration*2, WaveSine, rate),
	), vol*0.6)
}

// CreateGameOverSound plays a falling three-note phrase.
func CreateGameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(392.00, gameOverNoteDuration, WaveSaw, rate),
		tone(311.13, gameOverNoteDuration, WaveSaw, rate),
		tone(196.00, gameOverNoteDuration*2, WaveSaw, rate),
	), vol*0.5)
}

// AmbientGenerator generates an endless low pulse for the playing phase.
type AmbientGenerator struct {
	sr   beep.SampleRate
	pos  int
	beat int
}

// NewAmbientGenerator creates an ambient generator at 120 BPM.
func NewAmbientGenerator(sr beep.SampleRate) *AmbientGenerator {
	return &AmbientGenerator{
		sr:   sr,
		beat: sr.N(500 * time.Millisecond),
	}
}

func (g *AmbientGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(90 * time.Millisecond)
	for i := range samples {
		beatPos := g.pos % g.beat
		t := float64(g.pos) / float64(g.sr)

		kick := 0.0
		if beatPos < kickLen {
			env := 1 - float64(beatPos)/float64(kickLen)
			kt := float64(beatPos) / float64(g.sr)
			kick = 0.35 * env * math.Sin(2*math.Pi*55*(1+env)*kt)
		}
		pad := 0.08 * math.Sin(2*math.Pi*110*t) * (0.6 + 0.4*math.Sin(2*math.Pi*0.25*t))

		v := kick + pad
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *AmbientGenerator) Err() error { return nil }
