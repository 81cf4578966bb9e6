package engine

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/orrery/vmath"
)

// CosmicEvent is the active visual-effect mode, at most one at a time
type CosmicEvent uint8

const (
	EventNone CosmicEvent = iota
	EventSolarStorm
	EventRoguePlanet
	EventOrbitalResonance
	EventTimeLapse
	EventAsteroidImpact
	EventGravityWaves
)

var eventNames = [...]string{
	EventNone:             "",
	EventSolarStorm:       "solar_storm",
	EventRoguePlanet:      "rogue_planet",
	EventOrbitalResonance: "orbital_resonance",
	EventTimeLapse:        "time_lapse",
	EventAsteroidImpact:   "asteroid_impact",
	EventGravityWaves:     "gravity_waves",
}

var eventAlerts = [...]string{
	EventSolarStorm:       "SOLAR STORM IN PROGRESS",
	EventRoguePlanet:      "ROGUE PLANET DETECTED",
	EventOrbitalResonance: "ORBITAL RESONANCE ACTIVE",
	EventTimeLapse:        "TIME ACCELERATION: 50X",
	EventAsteroidImpact:   "ASTEROID STORM WARNING",
	EventGravityWaves:     "GRAVITATIONAL ANOMALY",
}

// Events lists the six toggleable events in UI order
func Events() []CosmicEvent {
	return []CosmicEvent{
		EventSolarStorm, EventRoguePlanet, EventOrbitalResonance,
		EventTimeLapse, EventAsteroidImpact, EventGravityWaves,
	}
}

// String returns the wire name, empty for EventNone
func (e CosmicEvent) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return ""
}

// Alert returns the banner text shown while the event runs
func (e CosmicEvent) Alert() string {
	if e == EventNone || int(e) >= len(eventAlerts) {
		return ""
	}
	return eventAlerts[e]
}

// ParseEvent resolves a wire name, "" and "none" map to EventNone
func ParseEvent(name string) (CosmicEvent, bool) {
	if name == "none" {
		return EventNone, true
	}
	for i, n := range eventNames {
		if n == name {
			return CosmicEvent(i), true
		}
	}
	return EventNone, false
}

// MarshalText encodes the wire name
func (e CosmicEvent) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes a wire name
func (e *CosmicEvent) UnmarshalText(b []byte) error {
	ev, ok := ParseEvent(string(b))
	if !ok {
		return &UnknownNameError{Kind: "event", Name: string(b)}
	}
	*e = ev
	return nil
}

// Event tuning
const (
	stormFlareRate   = 3.0
	stormFlareDepth  = 0.5
	stormGlowBase    = 0.3
	stormGlowDepth   = 0.2
	stormGlowRate    = 4.0
	stormWobbleRate  = 5.0
	stormWobbleDepth = 3.0

	rogueReach       = 300.0
	rogueWobbleRate  = 2.0
	rogueWobbleDepth = 20.0
	rogueBoost       = 0.5

	resonancePhase      = 0.5
	resonanceSpeedDepth = 0.3
	resonanceScaleDepth = 0.1

	TimeLapseOrbit = 50.0
	TimeLapseSpin  = 20.0

	impactChance       = 0.05
	impactImpulse      = 1.0 // Full width of the per-axis uniform impulse
	impactDamping      = 0.98
	planetImpactChance = 0.002
	planetImpactForce  = 2.0 // Full width of the tilt impulse in radians

	waveRate      = 2.0
	waveNumber    = 0.05
	waveWobble    = 15.0
	waveAmplitude = 10.0
)

// roguePoint is where the intruder sits in the orbital plane
var roguePoint = vmath.V3F(-200, 0, 0)

// perturbation is what the active event does to one planet this frame
type perturbation struct {
	orbit  float64 // Orbital angular speed multiplier
	spin   float64 // Self-rotation multiplier
	wobble float64 // Added to orbital radius
}

// frameEffects carries the active event's modifiers for every instance class
type frameEffects struct {
	planets []perturbation
	orbit   float64 // Asteroid and comet orbital multiplier
	spin    float64 // Moon spin multiplier
	scatter bool    // Asteroids drift under impulses instead of orbiting
}

// applyEvent dispatches on the active event and returns the modifiers for this frame
// Side effects that belong to a variant (sun flare, scale, glow, tilt, vertical offset) are applied here
func applyEvent(ev CosmicEvent, eventTime float64, w *World, rng *rand.Rand) frameEffects {
	fx := frameEffects{
		planets: make([]perturbation, len(w.Planets)),
		orbit:   1,
		spin:    1,
	}
	for i := range fx.planets {
		fx.planets[i] = perturbation{orbit: 1, spin: 1}
	}

	w.Sun.Emissive = SunEmissive
	w.Sun.Light = SunLight

	switch ev {
	case EventSolarStorm:
		solarStorm(eventTime, w, fx.planets)
	case EventRoguePlanet:
		roguePlanet(eventTime, w, fx.planets)
	case EventOrbitalResonance:
		orbitalResonance(eventTime, w, fx.planets)
	case EventTimeLapse:
		for i := range fx.planets {
			fx.planets[i] = perturbation{orbit: TimeLapseOrbit, spin: TimeLapseSpin}
		}
		fx.orbit = TimeLapseOrbit
		fx.spin = TimeLapseSpin
	case EventAsteroidImpact:
		planetImpacts(w, rng)
		fx.scatter = true
	case EventGravityWaves:
		gravityWaves(eventTime, w, fx.planets)
	}
	return fx
}

func solarStorm(tau float64, w *World, out []perturbation) {
	flare := 1 + math.Sin(tau*stormFlareRate)*stormFlareDepth
	w.Sun.Emissive = flare
	w.Sun.Light = SunLight * flare

	glow := stormGlowBase + math.Sin(tau*stormGlowRate)*stormGlowDepth
	for i := range w.Planets {
		w.Planets[i].Emissive = glow
		out[i].wobble = math.Sin(tau*stormWobbleRate+float64(i)) * stormWobbleDepth
	}
}

// roguePlanet disrupts orbits in proportion to proximity to the intruder
func roguePlanet(tau float64, w *World, out []perturbation) {
	for i := range w.Planets {
		p := &w.Planets[i]
		dx := p.Position.X - roguePoint.X
		dz := p.Position.Z - roguePoint.Z
		disruption := math.Max(0, 1-math.Hypot(dx, dz)/rogueReach)
		out[i].wobble = math.Sin(tau*rogueWobbleRate+float64(i)) * disruption * rogueWobbleDepth
		out[i].orbit = 1 + disruption*rogueBoost
	}
}

func orbitalResonance(tau float64, w *World, out []perturbation) {
	for i := range w.Planets {
		r := math.Sin(tau + float64(i)*resonancePhase)
		out[i].orbit = 1 + r*resonanceSpeedDepth
		w.Planets[i].Scale = 1 + r*resonanceScaleDepth
	}
}

func planetImpacts(w *World, rng *rand.Rand) {
	for i := range w.Planets {
		if rng.Float64() < planetImpactChance {
			force := (rng.Float64() - 0.5) * planetImpactForce
			w.Planets[i].Tilt.X += force
			w.Planets[i].Tilt.Z += force
		}
	}
}

// gravityWaves sends a ripple outward through the planets by distance
func gravityWaves(tau float64, w *World, out []perturbation) {
	for i := range w.Planets {
		p := &w.Planets[i]
		wave := math.Sin(tau*waveRate - p.Desc.Distance*waveNumber)
		out[i].wobble = wave * waveWobble
		p.YOffset = wave * waveAmplitude
	}
}

// scatter drifts an asteroid under random impulses with damping
func scatter(a *AsteroidInstance, rng *rand.Rand) {
	if rng.Float64() < impactChance {
		a.Velocity.X += (rng.Float64() - 0.5) * impactImpulse
		a.Velocity.Y += (rng.Float64() - 0.5) * impactImpulse
		a.Velocity.Z += (rng.Float64() - 0.5) * impactImpulse
	}
	a.Position.X += a.Velocity.X
	a.Position.Y += a.Velocity.Y
	a.Position.Z += a.Velocity.Z
	a.Velocity.X *= impactDamping
	a.Velocity.Y *= impactDamping
	a.Velocity.Z *= impactDamping
}

// clearEventResidue removes effects the previous event left behind
// Each reset is skipped when the incoming event owns that effect
func clearEventResidue(next CosmicEvent, w *World) {
	if next != EventAsteroidImpact {
		for i := range w.Asteroids {
			w.Asteroids[i].Velocity = vmath.Vec3F{}
		}
		for i := range w.Planets {
			w.Planets[i].Tilt = vmath.Vec3F{}
		}
	}
	if next != EventOrbitalResonance {
		for i := range w.Planets {
			w.Planets[i].Scale = 1
		}
	}
	if next != EventSolarStorm {
		for i := range w.Planets {
			w.Planets[i].Emissive = PlanetEmissive
		}
	}
}
