package engine

// MaxFrameDelta caps a single frame step so a stalled terminal does not jump the scene
const MaxFrameDelta = 0.1

// Clock tracks simulated time and time since the last event change, in seconds
type Clock struct {
	Time      float64 `json:"time"`
	EventTime float64 `json:"event_time"`
}

// Advance adds dt to both counters, negative steps are ignored
func (c *Clock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	c.Time += dt
	c.EventTime += dt
}

// ResetEvent zeroes the event counter, called on every event change
func (c *Clock) ResetEvent() {
	c.EventTime = 0
}
