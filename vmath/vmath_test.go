package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearV(a, b Vec3F) bool { return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) }

func TestOrbitPoint(t *testing.T) {
	tests := []struct {
		angle, radius, y float64
		want             Vec3F
	}{
		{0, 40, 0, V3F(40, 0, 0)},
		{math.Pi / 2, 85, 3, V3F(0, 3, 85)},
		{math.Pi, 10, -1, V3F(-10, -1, 0)},
	}
	for _, tt := range tests {
		if got := OrbitPoint(tt.angle, tt.radius, tt.y); !nearV(got, tt.want) {
			t.Errorf("OrbitPoint(%v, %v, %v) = %+v, want %+v", tt.angle, tt.radius, tt.y, got, tt.want)
		}
	}
}

func TestOrbitRingClosed(t *testing.T) {
	pts := OrbitRing(115, 128)
	if len(pts) != 129 {
		t.Fatalf("expected 129 points, got %d", len(pts))
	}
	if !nearV(pts[0], pts[128]) {
		t.Errorf("ring not closed: %+v vs %+v", pts[0], pts[128])
	}
	for i, p := range pts {
		if !near(V3FMag(p), 115) {
			t.Fatalf("point %d off radius: %v", i, V3FMag(p))
		}
	}
}

func TestWrapAngle(t *testing.T) {
	for _, a := range []float64{-7, -0.1, 0, 3, 6.5, 100} {
		w := WrapAngle(a)
		if w < 0 || w >= TwoPi {
			t.Errorf("WrapAngle(%v) = %v out of range", a, w)
		}
		if !near(math.Sin(w), math.Sin(a)) {
			t.Errorf("WrapAngle(%v) changed the angle", a)
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := V3FNormalize(Vec3F{}); got != (Vec3F{}) {
		t.Errorf("normalize zero = %+v", got)
	}
	if got := V3FWithLength(V3F(0, 3, 4), 10); !nearV(got, V3F(0, 6, 8)) {
		t.Errorf("WithLength = %+v", got)
	}
}

func TestLerp(t *testing.T) {
	got := V3FLerp(V3F(0, 0, 0), V3F(10, -20, 30), 0.1)
	if !nearV(got, V3F(1, -2, 3)) {
		t.Errorf("lerp = %+v", got)
	}
}

func TestRayIntersectSphere(t *testing.T) {
	r := NewRay(V3F(0, 0, 100), V3F(0, 0, -5))

	tests := []struct {
		name   string
		center Vec3F
		radius float64
		hit    bool
		dist   float64
	}{
		{"head on", V3F(0, 0, 0), 10, true, 90},
		{"grazing miss", V3F(11, 0, 0), 10, false, 0},
		{"offset hit", V3F(6, 0, 0), 10, true, 92},
		{"behind origin", V3F(0, 0, 200), 10, false, 0},
		{"origin inside", V3F(0, 0, 100), 10, true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := r.IntersectSphere(tt.center, tt.radius)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(d, tt.dist) {
				t.Errorf("distance = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestLookAtBasis(t *testing.T) {
	eye := V3F(0, 0, 300)
	b := LookAt(eye, Vec3F{})

	if !nearV(b.Forward, V3F(0, 0, -1)) || !nearV(b.Right, V3F(1, 0, 0)) || !nearV(b.Up, V3F(0, 1, 0)) {
		t.Fatalf("unexpected basis %+v", b)
	}

	v := b.ToView(eye, V3F(5, 7, 0))
	if !nearV(v, V3F(5, 7, 300)) {
		t.Errorf("ToView = %+v", v)
	}
	if w := b.FromView(V3F(0, 0, 1)); !nearV(w, b.Forward) {
		t.Errorf("FromView forward = %+v", w)
	}
}

func TestLookAtStraightDown(t *testing.T) {
	b := LookAt(V3F(0, 500, 0), Vec3F{})
	for _, v := range []Vec3F{b.Forward, b.Right, b.Up} {
		if math.IsNaN(v.X) || !near(V3FMag(v), 1) {
			t.Fatalf("degenerate basis %+v", b)
		}
	}
	if !nearV(b.Forward, V3F(0, -1, 0)) {
		t.Errorf("forward = %+v", b.Forward)
	}
}

func TestRotateXZ(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec3F
		rx, rz float64
		want   Vec3F
	}{
		{"identity", V3F(1, 2, 3), 0, 0, V3F(1, 2, 3)},
		{"quarter about z", V3F(1, 0, 0), 0, math.Pi / 2, V3F(0, 1, 0)},
		{"quarter about x", V3F(0, 0, 1), math.Pi / 2, 0, V3F(0, -1, 0)},
		{"z then x", V3F(1, 0, 0), math.Pi / 2, math.Pi / 2, V3F(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateXZ(tt.v, tt.rx, tt.rz)
			if !nearV(got, tt.want) {
				t.Errorf("RotateXZ(%+v, %v, %v) = %+v, want %+v", tt.v, tt.rx, tt.rz, got, tt.want)
			}
			if !near(V3FMag(got), V3FMag(tt.v)) {
				t.Errorf("length changed: %v -> %v", V3FMag(tt.v), V3FMag(got))
			}
		})
	}
}
