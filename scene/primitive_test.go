package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/go-raybench/types"
	"github.com/chewxy/math32"
)

var testMaterial = NewMaterial(types.XYZ(0.5, 0.5, 0.5), types.XYZ(0.1, 0.1, 0.1), 10, types.XYZ(0.1, 0.1, 0.1), 0)

func TestSphereIntersect(t *testing.T) {
	eye := types.XYZ(0, 0, 5)
	ray := types.XYZ(0, 0, -1)

	for _, radius := range []float32{0.5, 1, 2.5, 5} {
		sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), radius)
		hit, dist := sphere.Intersect(eye, ray, 0, Sentinel)
		if hit != sphere {
			t.Fatalf("[r=%v] expected ray to hit the sphere", radius)
		}
		if exp := 5 - radius; math.Abs(float64(dist-exp)) > 1e-5 {
			t.Fatalf("[r=%v] expected hit distance %v; got %v", radius, exp, dist)
		}
	}
}

func TestSphereIntersectMiss(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)

	// Passes outside the silhouette.
	if hit, _ := sphere.Intersect(types.XYZ(2, 0, 5), types.XYZ(0, 0, -1), 0, Sentinel); hit != nil {
		t.Fatal("expected ray outside the silhouette to miss")
	}

	// Both roots fall outside the requested range.
	if hit, _ := sphere.Intersect(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1), 0, 3); hit != nil {
		t.Fatal("expected hit beyond max to be discarded")
	}

	// Sphere behind the ray origin.
	if hit, _ := sphere.Intersect(types.XYZ(0, 0, 5), types.XYZ(0, 0, 1), 0, Sentinel); hit != nil {
		t.Fatal("expected sphere behind the origin to be missed")
	}
}

func TestSphereIntersectFromInside(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), 2)
	hit, dist := sphere.Intersect(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), 0, Sentinel)
	if hit == nil {
		t.Fatal("expected ray leaving the sphere to hit its far side")
	}
	if dist != 2 {
		t.Fatalf("expected hit distance 2; got %v", dist)
	}
}

func TestSphereIntersectTangent(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(0, 0, 0), 1)
	eye := types.XYZ(1, 0, 5)
	ray := types.XYZ(0, 0, -1)

	// The discriminant of a tangent ray is exactly zero.
	eMinusC := eye.Sub(sphere.Center())
	b := ray.Dot(eMinusC)
	disc := b*b - ray.Dot(ray)*(eMinusC.Dot(eMinusC)-1)
	if disc != 0 {
		t.Fatalf("expected zero discriminant; got %v", disc)
	}

	hit, dist := sphere.Intersect(eye, ray, 0, Sentinel)
	if hit == nil {
		t.Fatal("expected tangent ray to touch the sphere")
	}
	if dist != 5 {
		t.Fatalf("expected touch point at distance 5; got %v", dist)
	}
}

func TestSphereNormalAndBounds(t *testing.T) {
	sphere := NewSphere(testMaterial, types.XYZ(1, 2, 3), 2)

	n := sphere.Normal(types.XYZ(1, 4, 3))
	if !types.ApproxEqual(n, types.XYZ(0, 1, 0), 1e-6) {
		t.Fatalf("expected normal (0, 1, 0); got %v", n)
	}

	b := sphere.Bounds()
	if !types.ApproxEqual(b.Min, types.XYZ(-1, 0, 1), 0) || !types.ApproxEqual(b.Max, types.XYZ(3, 4, 5), 0) {
		t.Fatalf("unexpected sphere bounds: %v", b)
	}
}

func TestTriangleIntersectCentroid(t *testing.T) {
	tri := NewTriangle(testMaterial, types.XYZ(-1, -1, 0), types.XYZ(1, -1, 0), types.XYZ(0, 1, 0))
	center := tri.Center()
	eye := center.Add(types.XYZ(0, 0, 5))

	hit, dist := tri.Intersect(eye, types.XYZ(0, 0, -1), 0, Sentinel)
	if hit != tri {
		t.Fatal("expected ray through the centroid to hit the triangle")
	}
	if math.Abs(float64(dist-5)) > 1e-5 {
		t.Fatalf("expected hit distance 5; got %v", dist)
	}

	dist, beta, gamma, ok := tri.solve(eye, types.XYZ(0, 0, -1), 0, Sentinel)
	if !ok {
		t.Fatal("expected solve to report the centroid hit")
	}
	if math.Abs(float64(dist-5)) > 1e-5 {
		t.Fatalf("expected solved distance 5; got %v", dist)
	}
	if math.Abs(float64(beta-1.0/3)) > 1e-6 || math.Abs(float64(gamma-1.0/3)) > 1e-6 {
		t.Fatalf("expected centroid coordinates (1/3, 1/3); got (%v, %v)", beta, gamma)
	}
}

func TestTriangleIntersectMiss(t *testing.T) {
	tri := NewTriangle(testMaterial, types.XYZ(-1, -1, 0), types.XYZ(1, -1, 0), types.XYZ(0, 1, 0))

	specs := []struct {
		name string
		eye  types.Vec3
		ray  types.Vec3
	}{
		{"parallel to plane", types.XYZ(0, 0, 1), types.XYZ(1, 0, 0)},
		{"parallel inside plane", types.XYZ(-5, 0, 0), types.XYZ(1, 0, 0)},
		{"outside edge", types.XYZ(2, 2, 5), types.XYZ(0, 0, -1)},
		{"behind origin", types.XYZ(0, 0, 5), types.XYZ(0, 0, 1)},
	}

	for _, s := range specs {
		if hit, _ := tri.Intersect(s.eye, s.ray, 0, Sentinel); hit != nil {
			t.Fatalf("[%s] expected miss", s.name)
		}
	}
}

func TestTriangleIntersectParallelTilted(t *testing.T) {
	v1 := types.XYZ(0, 0, 0)
	v2 := types.XYZ(1, 0, 0.1)
	v3 := types.XYZ(0, 1, 0.3)
	tri := NewTriangle(testMaterial, v1, v2, v3)

	// In-plane orthonormal basis.
	u := v2.Sub(v1).Normalize()
	w := tri.Normal(v1).Cross(u).Normalize()
	onPlane := v1.Add(v2.Sub(v1).MulS(0.25)).Add(v3.Sub(v1).MulS(0.25))
	offPlane := onPlane.Add(tri.Normal(v1).MulS(0.5))

	const steps = 2000
	for step := 0; step < steps; step++ {
		angle := 2 * math32.Pi * float32(step) / steps
		ray := u.MulS(math32.Cos(angle)).Add(w.MulS(math32.Sin(angle)))

		if hit, dist := tri.Intersect(onPlane, ray, 0, Sentinel); hit != nil {
			t.Fatalf("[step %d] expected in-plane ray %v to miss; got hit at %v", step, ray, dist)
		}
		if hit, dist := tri.Intersect(offPlane, ray, 0, Sentinel); hit != nil {
			t.Fatalf("[step %d] expected parallel ray %v to miss; got hit at %v", step, ray, dist)
		}
	}

	// A ray crossing the plane still hits.
	eye := onPlane.Add(tri.Normal(v1).MulS(2))
	if hit, _ := tri.Intersect(eye, tri.Normal(v1).Neg(), 0, Sentinel); hit != tri {
		t.Fatal("expected ray along the inverted normal to hit the tilted triangle")
	}
}

func TestTriangleNormalWinding(t *testing.T) {
	ccw := NewTriangle(testMaterial, types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0))
	cw := NewTriangle(testMaterial, types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), types.XYZ(1, 0, 0))

	if n := ccw.Normal(types.XYZ(0, 0, 0)); !types.ApproxEqual(n, types.XYZ(0, 0, 1), 1e-7) {
		t.Fatalf("expected counter-clockwise winding to face +z; got %v", n)
	}
	if n := cw.Normal(types.XYZ(0, 0, 0)); !types.ApproxEqual(n, types.XYZ(0, 0, -1), 1e-7) {
		t.Fatalf("expected clockwise winding to face -z; got %v", n)
	}
}

func TestTriangleBoundsAndCenter(t *testing.T) {
	tri := NewTriangle(testMaterial, types.XYZ(0, 3, -1), types.XYZ(3, 0, 2), types.XYZ(-3, 0, 2))
	b := tri.Bounds()
	if !types.ApproxEqual(b.Min, types.XYZ(-3, 0, -1), 0) || !types.ApproxEqual(b.Max, types.XYZ(3, 3, 2), 0) {
		t.Fatalf("unexpected triangle bounds: %v", b)
	}
	if c := tri.Center(); !types.ApproxEqual(c, types.XYZ(0, 1, 1), 1e-6) {
		t.Fatalf("expected centroid (0, 1, 1); got %v", c)
	}
}
