package vecfield

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInvertFixedPoint3DConstantTranslation(t *testing.T) {
	d := ConstantField3D[float64](6, 6, 6, 1, 0, 0)

	inv, stats, err := InvertFixedPoint3D(d, 6, 6, 6, 50, 1e-4, nil)
	if err != nil {
		t.Fatalf("InvertFixedPoint3D: %v", err)
	}
	if stats.Iterations >= 50 {
		t.Fatalf("did not converge: %d iterations", stats.Iterations)
	}
	// The 3-D residual is the mean damped-update magnitude; the loop only
	// stops early once it reaches tolerance.
	if stats.Residual > 1e-4 {
		t.Errorf("Residual = %v, want <= 1e-4", stats.Residual)
	}

	// Interior slices must approximately invert the translation.
	for s := 1; s < 6; s++ {
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				gotS, gotR, gotC := inv.Vec(s, i, j)
				if !almostEqual(gotS, -1, 1e-3) || !almostEqual(gotR, 0, 1e-3) || !almostEqual(gotC, 0, 1e-3) {
					t.Errorf("inv(%d,%d,%d) = (%v,%v,%v), want (-1,0,0)", s, i, j, gotS, gotR, gotC)
				}
			}
		}
	}
}

func TestInvertFixedPoint3DHarmonic(t *testing.T) {
	d := HarmonicField3D[float64](8, 8, 8, 0.05, 2)

	inv, stats, err := InvertFixedPoint3D(d, 8, 8, 8, 100, 1e-4, nil)
	if err != nil {
		t.Fatalf("InvertFixedPoint3D: %v", err)
	}
	if stats.Iterations >= 100 {
		t.Fatalf("did not converge: %d iterations", stats.Iterations)
	}

	_, compStats, err := Compose3D(inv, d)
	if err != nil {
		t.Fatalf("Compose3D: %v", err)
	}
	if compStats.Mean > 0.01 {
		t.Errorf("mean norm of inv o d = %v, want < 0.01", compStats.Mean)
	}
}

func TestInvertFixedPoint3DZeroIterations(t *testing.T) {
	d := ConstantField3D[float64](3, 3, 3, 1, 1, 1)
	start := ConstantField3D[float64](3, 3, 3, -0.5, -0.5, -0.5)

	inv, stats, err := InvertFixedPoint3D(d, 3, 3, 3, 0, 1e-6, start)
	if err != nil {
		t.Fatalf("InvertFixedPoint3D: %v", err)
	}
	if stats.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", stats.Iterations)
	}
	if !almostEqual(stats.Residual, 1+1e-6, tolF64) {
		t.Errorf("Residual = %v, want the seed value %v", stats.Residual, 1+1e-6)
	}
	if diff := cmp.Diff(start.Data(), inv.Data()); diff != "" {
		t.Errorf("zero-iteration result differs from start (-want +got):\n%s", diff)
	}
}

func TestInvertFixedPoint3DNegativeBudget(t *testing.T) {
	d := NewField3D[float64](3, 3, 3)
	if _, _, err := InvertFixedPoint3D(d, 3, 3, 3, -5, 1e-6, nil); !errors.Is(err, ErrInvalidIterationBudget) {
		t.Fatalf("err = %v, want ErrInvalidIterationBudget", err)
	}
}

func TestInvertFixedPoint3DStartNotMutated(t *testing.T) {
	d := ConstantField3D[float64](4, 4, 4, 0.5, 0, 0)
	start := ConstantField3D[float64](4, 4, 4, -0.25, 0, 0)
	snapshot := start.Clone()

	if _, _, err := InvertFixedPoint3D(d, 4, 4, 4, 20, 1e-6, start); err != nil {
		t.Fatalf("InvertFixedPoint3D: %v", err)
	}
	if diff := cmp.Diff(snapshot.Data(), start.Data()); diff != "" {
		t.Errorf("start was mutated (-want +got):\n%s", diff)
	}
}

func TestInvertFixedPoint3DStrictDegenerate(t *testing.T) {
	d := NewField3D[float64](3, 3, 3)
	if _, _, err := InvertFixedPoint3DStrict(d, 3, 0, 3, 10, 1e-6, nil); !errors.Is(err, ErrDegenerateGrid) {
		t.Fatalf("err = %v, want ErrDegenerateGrid", err)
	}
}

func TestInvertFixedPoint3DFloat32(t *testing.T) {
	d := ConstantField3D[float32](5, 5, 5, 0, 1, 0)

	inv, stats, err := InvertFixedPoint3D[float32](d, 5, 5, 5, 60, 1e-3, nil)
	if err != nil {
		t.Fatalf("InvertFixedPoint3D: %v", err)
	}
	if stats.Iterations >= 60 {
		t.Fatalf("did not converge: %d iterations", stats.Iterations)
	}
	for s := 0; s < 5; s++ {
		for i := 1; i < 5; i++ {
			for j := 0; j < 5; j++ {
				_, gotR, _ := inv.Vec(s, i, j)
				if !almostEqual(float64(gotR), -1, 5e-3) {
					t.Errorf("inv(%d,%d,%d) row component = %v, want -1", s, i, j, gotR)
				}
			}
		}
	}
}
