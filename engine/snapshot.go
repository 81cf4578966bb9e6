package engine

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

// Snapshot is the read-only view handed to presentation layers
type Snapshot struct {
	State
	Alert       string        `json:"alert,omitempty"`
	InfoVisible bool          `json:"info_visible"`
	Info        *BodyInfo     `json:"info,omitempty"`
	Planets     []PlanetPose  `json:"planets"`
	Camera      CameraReading `json:"camera"`
}

// BodyInfo is the info panel content for the selected planet
type BodyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Diameter    string `json:"diameter"`
	Distance    string `json:"distance"`
}

// PlanetPose is a planet's current placement
type PlanetPose struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Scale float64 `json:"scale"`
	TiltX float64 `json:"tilt_x"`
	TiltZ float64 `json:"tilt_z"`
}

// CameraReading is the camera placement for remote viewers
type CameraReading struct {
	Position [3]float64 `json:"position"`
	LookAt   [3]float64 `json:"look_at"`
}

// Snapshot copies everything a presentation layer reads
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		State:       s.State,
		Alert:       s.EventAlert(),
		InfoVisible: s.InfoVisible(),
		Info:        s.SelectedInfo(),
		Planets:     make([]PlanetPose, len(s.World.Planets)),
	}
	for i := range s.World.Planets {
		p := &s.World.Planets[i]
		snap.Planets[i] = PlanetPose{Name: p.Desc.Name, X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z, Scale: p.Scale, TiltX: p.Tilt.X, TiltZ: p.Tilt.Z}
	}
	snap.Camera = *readCamera(s.Camera.Pose())
	return snap
}

// SelectedInfo formats the info panel for the current selection, nil when nothing is selected
func (s *Simulation) SelectedInfo() *BodyInfo {
	p := s.Selected()
	if p == nil {
		return nil
	}
	return &BodyInfo{
		Name:        p.Desc.Name,
		Description: p.Desc.Info,
		Diameter:    p.Desc.Diameter(),
		Distance:    p.Desc.DistanceText(),
	}
}

// savedState is the persisted form: state fields plus the camera placement
type savedState struct {
	State
	Camera *CameraReading `json:"camera,omitempty"`
}

// MarshalState encodes the plain-data state fields and the camera placement
func (s *Simulation) MarshalState() ([]byte, error) {
	pose := s.Camera.Pose()
	return json.Marshal(savedState{State: s.State, Camera: readCamera(pose)})
}

// RestoreState decodes state fields and re-applies the view target
// Instance collections are not part of the encoding. A changed event clears the
// previous event's residue and is reported to listeners like any other switch
func (s *Simulation) RestoreState(data []byte) error {
	saved := savedState{State: DefaultState()}
	if err := json.Unmarshal(data, &saved); err != nil {
		return errors.Wrap(err, "decode state")
	}
	st := saved.State
	if !st.View.Valid() {
		st.View = camera.ViewFree
	}
	st.Zoom = vmath.Clamp(st.Zoom, MinZoom, MaxZoom)
	if st.EventTime < 0 {
		st.EventTime = 0
	}
	if s.World.PlanetIndex(st.Selected) < 0 {
		st.Selected = ""
	}

	prev := s.State.Event
	s.State = st
	s.Camera.SetMode(st.View)
	if saved.Camera != nil {
		s.Camera.SetPose(camera.Pose{
			Position: vmath.V3F(saved.Camera.Position[0], saved.Camera.Position[1], saved.Camera.Position[2]),
			LookAt:   vmath.V3F(saved.Camera.LookAt[0], saved.Camera.LookAt[1], saved.Camera.LookAt[2]),
		})
	}
	if prev != st.Event {
		clearEventResidue(st.Event, s.World)
		if st.Event != EventSolarStorm {
			s.World.Sun.Emissive = SunEmissive
			s.World.Sun.Light = SunLight
		}
		s.notify(prev, st.Event)
	}
	return nil
}

func readCamera(pose camera.Pose) *CameraReading {
	return &CameraReading{
		Position: [3]float64{pose.Position.X, pose.Position.Y, pose.Position.Z},
		LookAt:   [3]float64{pose.LookAt.X, pose.LookAt.Y, pose.LookAt.Z},
	}
}
