package scene

import (
	"testing"

	"github.com/achilleasa/go-raybench/types"
)

func TestVolumeIntersectNearestChild(t *testing.T) {
	near := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)
	far := NewSphere(testMaterial, types.XYZ(0, 0, -5), 1)
	children := []Surface{far, near}
	vol := NewVolume(ComputeBounds(children), far, near)

	hit, dist := vol.Intersect(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), 0, Sentinel)
	if hit != near {
		t.Fatalf("expected nearest sphere to be hit; got %v", hit)
	}
	if dist != 4 {
		t.Fatalf("expected hit distance 4; got %v", dist)
	}

	// Limiting the range to exclude the near sphere must yield the far one.
	hit, _ = vol.Intersect(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), 6.5, Sentinel)
	if hit != far {
		t.Fatalf("expected far sphere to be hit; got %v", hit)
	}
}

func TestVolumeSlabRejectsMisses(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)
	vol := NewVolume(sphere.Bounds(), sphere, nil)

	specs := []struct {
		name     string
		eye, ray types.Vec3
		min, max float32
	}{
		{"beside box", types.XYZ(3, 0, 5), types.XYZ(0.01, 0.01, -1), 0, Sentinel},
		{"pointing away", types.XYZ(0, 0, 5), types.XYZ(0.01, 0.01, 1), 0, Sentinel},
		{"range ends before box", types.XYZ(0, 0, 5), types.XYZ(0.01, 0.01, -1), 0, 2},
	}

	for _, s := range specs {
		if hit, _ := vol.Intersect(s.eye, s.ray, s.min, s.max); hit != nil {
			t.Fatalf("[%s] expected miss; got %v", s.name, hit)
		}
	}

	// Single child volumes still forward hits.
	if hit, _ := vol.Intersect(types.XYZ(0, 0, 5), types.XYZ(0.01, 0.01, -1), 0, Sentinel); hit != sphere {
		t.Fatalf("expected left child to be hit; got %v", hit)
	}
}

func TestJumbleIntersect(t *testing.T) {
	a := NewSphere(testMaterial, types.XYZ(0, 0, -10), 1)
	b := NewSphere(testMaterial, types.XYZ(0, 0, -2), 1)
	c := NewSphere(testMaterial, types.XYZ(10, 0, 0), 1)
	j := NewJumble([]Surface{a, b, c})

	hit, dist := j.Intersect(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), 0, Sentinel)
	if hit != b {
		t.Fatalf("expected nearest sphere to be hit; got %v", hit)
	}
	if dist != 6 {
		t.Fatalf("expected hit distance 6; got %v", dist)
	}

	if hit, _ := j.Intersect(types.XYZ(0, 5, 5), types.XYZ(0, 0, -1), 0, Sentinel); hit != nil {
		t.Fatalf("expected miss; got %v", hit)
	}
}

func TestCompositeContractViolations(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)
	vol := NewVolume(sphere.Bounds(), sphere, nil)
	jumble := NewJumble([]Surface{sphere})

	specs := []struct {
		name string
		exp  SurfaceType
		fn   func()
	}{
		{"volume normal", VolumeSurface, func() { vol.Normal(types.XYZ(0, 0, 0)) }},
		{"volume center", VolumeSurface, func() { vol.Center() }},
		{"volume material", VolumeSurface, func() { vol.Material() }},
		{"jumble normal", JumbleSurface, func() { jumble.Normal(types.XYZ(0, 0, 0)) }},
		{"jumble center", JumbleSurface, func() { jumble.Center() }},
		{"jumble bounds", JumbleSurface, func() { jumble.Bounds() }},
		{"jumble material", JumbleSurface, func() { jumble.Material() }},
	}

	for _, s := range specs {
		func() {
			defer func() {
				r := recover()
				cerr, ok := r.(*ContractError)
				if !ok {
					t.Fatalf("[%s] expected a *ContractError panic; got %v", s.name, r)
				}
				if cerr.Surface != s.exp {
					t.Fatalf("[%s] expected violation on %s; got %s", s.name, s.exp, cerr.Surface)
				}
			}()
			s.fn()
		}()
	}

	// Volumes do expose their bounds.
	if b := vol.Bounds(); !b.Contains(sphere.Bounds()) {
		t.Fatalf("expected volume bounds to contain child bounds; got %v", b)
	}
}

func TestWalkAndInspect(t *testing.T) {
	s1 := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)
	s2 := NewSphere(testMaterial, types.XYZ(3, 0, 0), 1)
	tri := NewTriangle(testMaterial, types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0))
	inner := NewVolume(ComputeBounds([]Surface{s1, s2}), s1, s2)
	root := NewVolume(ComputeBounds([]Surface{s1, s2, tri}), inner, NewJumble([]Surface{tri}))

	info := Inspect(root)
	if info.Primitives != 3 || info.Spheres != 2 || info.Triangles != 1 {
		t.Fatalf("unexpected primitive counts: %+v", info)
	}
	if info.Volumes != 2 || info.Jumbles != 1 {
		t.Fatalf("unexpected node counts: %+v", info)
	}
	if info.MaxDepth != 2 {
		t.Fatalf("expected max depth 2; got %d", info.MaxDepth)
	}

	// Pruned walks do not descend.
	visited := 0
	Walk(root, func(s Surface, depth int) bool {
		visited++
		return depth == 0
	})
	if visited != 3 {
		t.Fatalf("expected 3 visited surfaces; got %d", visited)
	}
}

func TestBoundsHelpers(t *testing.T) {
	a := Bounds{Min: types.XYZ(0, 0, 0), Max: types.XYZ(1, 1, 1)}
	b := Bounds{Min: types.XYZ(-1, 0.5, 0), Max: types.XYZ(0.5, 2, 0.5)}

	u := a.Union(b)
	if !u.Contains(a) || !u.Contains(b) {
		t.Fatalf("expected union %v to contain both boxes", u)
	}
	if a.Contains(b) {
		t.Fatal("expected a not to contain b")
	}
	if mid := u.Mid(1); mid != 1 {
		t.Fatalf("expected y midpoint 1; got %v", mid)
	}

	e := EmptyBounds().Union(a)
	if !types.ApproxEqual(e.Min, a.Min, 0) || !types.ApproxEqual(e.Max, a.Max, 0) {
		t.Fatalf("expected empty bounds to be the union identity; got %v", e)
	}
}
