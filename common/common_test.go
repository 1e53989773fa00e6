package common

import (
	"sync/atomic"
	"testing"
)

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce = %d, want 3", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce of zero values = %q, want empty", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 1, 10, 5},
		{-1, 1, 10, 1},
		{11, 1, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSRGBToLinear(t *testing.T) {
	if got := SRGBToLinear(0); got != 0 {
		t.Errorf("SRGBToLinear(0) = %v", got)
	}
	if got := SRGBToLinear(1); got < 0.9999 || got > 1.0001 {
		t.Errorf("SRGBToLinear(1) = %v, want 1", got)
	}
	if got := SRGBToLinear(0.5); got < 0.21 || got > 0.22 {
		t.Errorf("SRGBToLinear(0.5) = %v, want ~0.214", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32{}) != nil {
		t.Error("expected nil for empty slice")
	}
	b := SliceToBytes([]uint32{1, 2})
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
}

func TestRowWorkerCoversEveryRow(t *testing.T) {
	rw := NewRowWorker(4)
	for _, rows := range []int{1, 63, 64, 500, 1080} {
		seen := make([]int32, rows)
		rw.Run(rows, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&seen[y], 1)
			}
		})
		for y, n := range seen {
			if n != 1 {
				t.Fatalf("rows=%d: row %d visited %d times", rows, y, n)
			}
		}
	}
}

func TestNilRowWorkerRunsInline(t *testing.T) {
	var rw *RowWorker
	calls := 0
	rw.Run(10, func(y0, y1 int) {
		calls++
		if y0 != 0 || y1 != 10 {
			t.Errorf("band = [%d, %d), want [0, 10)", y0, y1)
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
