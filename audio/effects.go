package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/orrery/engine"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	noteAttack  = 8 * time.Millisecond
	noteRelease = 60 * time.Millisecond
)

// note is one step of an event cue
type note struct {
	freq float64
	dur  time.Duration
	wave WaveType
	gain float64
}

// eventCues are the tone sequences played when an event switches on, EventNone is the switch-off cue
var eventCues = map[engine.CosmicEvent][]note{
	engine.EventNone: {
		{freq: 440, dur: 90 * time.Millisecond, wave: WaveSine, gain: 0.4},
		{freq: 330, dur: 140 * time.Millisecond, wave: WaveSine, gain: 0.4},
	},
	engine.EventSolarStorm: {
		{freq: 523.25, dur: 80 * time.Millisecond, wave: WaveSaw, gain: 0.35},
		{freq: 659.25, dur: 80 * time.Millisecond, wave: WaveSaw, gain: 0.35},
		{freq: 783.99, dur: 200 * time.Millisecond, wave: WaveSaw, gain: 0.35},
	},
	engine.EventRoguePlanet: {
		{freq: 146.83, dur: 220 * time.Millisecond, wave: WaveSquare, gain: 0.3},
		{freq: 110, dur: 320 * time.Millisecond, wave: WaveSquare, gain: 0.3},
	},
	engine.EventOrbitalResonance: {
		{freq: 440, dur: 110 * time.Millisecond, wave: WaveSine, gain: 0.5},
		{freq: 554.37, dur: 110 * time.Millisecond, wave: WaveSine, gain: 0.5},
		{freq: 659.25, dur: 110 * time.Millisecond, wave: WaveSine, gain: 0.5},
		{freq: 880, dur: 220 * time.Millisecond, wave: WaveSine, gain: 0.5},
	},
	engine.EventTimeLapse: {
		{freq: 987.77, dur: 50 * time.Millisecond, wave: WaveSquare, gain: 0.25},
		{freq: 1318.51, dur: 50 * time.Millisecond, wave: WaveSquare, gain: 0.25},
		{freq: 1975.53, dur: 120 * time.Millisecond, wave: WaveSquare, gain: 0.25},
	},
	engine.EventAsteroidImpact: {
		{dur: 120 * time.Millisecond, wave: WaveNoise, gain: 0.3},
		{freq: 80, dur: 260 * time.Millisecond, wave: WaveSaw, gain: 0.4},
	},
	engine.EventGravityWaves: {
		{freq: 98, dur: 300 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 130.81, dur: 300 * time.Millisecond, wave: WaveSine, gain: 0.6},
	},
}

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.totalSamples - e.releaseSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies linear gain, math.Log2(0) is -Inf so zero is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// EventCue builds the tone sequence announcing ev, nil for an unknown event
func EventCue(ev engine.CosmicEvent, rate beep.SampleRate, master float64) beep.Streamer {
	notes, ok := eventCues[ev]
	if !ok {
		return nil
	}
	steps := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.dur, n.wave, rate)
		shaped := NewEnvelope(osc, n.dur, noteAttack, noteRelease, rate)
		steps = append(steps, newVolume(shaped, n.gain))
	}
	return newVolume(beep.Seq(steps...), master)
}

// CueDuration is the total length of the cue for ev
func CueDuration(ev engine.CosmicEvent) time.Duration {
	var d time.Duration
	for _, n := range eventCues[ev] {
		d += n.dur
	}
	return d
}
