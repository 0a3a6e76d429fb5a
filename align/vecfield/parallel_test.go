package vecfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jerryfrancis-97/dipy/internal/workerpool"
)

func TestCompose2DParallelMatchesSerial(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	d1 := randomField2D(33, 29, 21, 2.0)
	d2 := randomField2D(33, 29, 22, 2.0)

	serial, serialStats, err := Compose2D(d1, d2)
	if err != nil {
		t.Fatalf("Compose2D: %v", err)
	}
	parallel, parallelStats, err := Compose2DParallel(pool, d1, d2)
	if err != nil {
		t.Fatalf("Compose2DParallel: %v", err)
	}

	// Per-point values are computed independently, so the fast mode must
	// agree with the serial kernel bit for bit.
	if diff := cmp.Diff(serial.Data(), parallel.Data()); diff != "" {
		t.Errorf("fields differ (-serial +parallel):\n%s", diff)
	}

	// The segmented statistics reduction may differ in the last bits.
	if !almostEqual(serialStats.Max, parallelStats.Max, tolF64) ||
		!almostEqual(serialStats.Mean, parallelStats.Mean, 1e-10) ||
		!almostEqual(serialStats.Std, parallelStats.Std, 1e-8) {
		t.Errorf("stats diverge: serial %+v, parallel %+v", serialStats, parallelStats)
	}
}

func TestCompose3DParallelMatchesSerial(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	d1 := randomField3D(9, 11, 13, 31, 2.0)
	d2 := randomField3D(9, 11, 13, 32, 2.0)

	serial, serialStats, err := Compose3D(d1, d2)
	if err != nil {
		t.Fatalf("Compose3D: %v", err)
	}
	parallel, parallelStats, err := Compose3DParallel(pool, d1, d2)
	if err != nil {
		t.Fatalf("Compose3DParallel: %v", err)
	}

	if diff := cmp.Diff(serial.Data(), parallel.Data()); diff != "" {
		t.Errorf("fields differ (-serial +parallel):\n%s", diff)
	}
	if !almostEqual(serialStats.Mean, parallelStats.Mean, 1e-10) {
		t.Errorf("stats diverge: serial %+v, parallel %+v", serialStats, parallelStats)
	}
}

func TestCompose2DParallelSingleRow(t *testing.T) {
	pool := workerpool.New(8)
	defer pool.Close()

	// Fewer rows than workers degrades to the serial kernel.
	d1 := randomField2D(1, 64, 5, 1.0)
	d2 := randomField2D(1, 64, 6, 1.0)

	serial, serialStats, err := Compose2D(d1, d2)
	if err != nil {
		t.Fatalf("Compose2D: %v", err)
	}
	parallel, parallelStats, err := Compose2DParallel(pool, d1, d2)
	if err != nil {
		t.Fatalf("Compose2DParallel: %v", err)
	}

	if diff := cmp.Diff(serial.Data(), parallel.Data()); diff != "" {
		t.Errorf("fields differ:\n%s", diff)
	}
	if serialStats != parallelStats {
		t.Errorf("single-segment stats must match exactly: %+v vs %+v", serialStats, parallelStats)
	}
}
