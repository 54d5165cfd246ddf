package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		check      func(t *testing.T, got int)
	}{
		{
			name:       "CPU bound matches GOMAXPROCS",
			multiplier: 1.0,
			limit:      0,
			check: func(t *testing.T, got int) {
				if got != available {
					t.Errorf("Count(1.0, 0) = %d, want %d", got, available)
				}
			},
		},
		{
			name:       "limit caps the count",
			multiplier: 2.0,
			limit:      1,
			check: func(t *testing.T, got int) {
				if got != 1 {
					t.Errorf("Count(2.0, 1) = %d, want 1", got)
				}
			},
		},
		{
			name:       "tiny multiplier still yields one worker",
			multiplier: 0.001,
			limit:      0,
			check: func(t *testing.T, got int) {
				if got != 1 {
					t.Errorf("Count(0.001, 0) = %d, want 1", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Count(tt.multiplier, tt.limit))
		})
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("DECODE_WORKERS", "3")

	if got := Count(1.0, 0); got != 3 {
		t.Errorf("Count with DECODE_WORKERS=3 = %d, want 3", got)
	}
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Count with DECODE_WORKERS=3 and limit 2 = %d, want 2", got)
	}
}

func TestCountOverrideInvalid(t *testing.T) {
	t.Setenv("DECODE_WORKERS", "not-a-number")

	if got := Count(1.0, 0); got < 1 {
		t.Errorf("Count with invalid override = %d, want >= 1", got)
	}
}

func TestForCPUAndForIO(t *testing.T) {
	if got := ForCPU(0); got < 1 {
		t.Errorf("ForCPU(0) = %d, want >= 1", got)
	}
	if cpu, io := ForCPU(0), ForIO(0); io < cpu {
		t.Errorf("ForIO(0) = %d, want >= ForCPU(0) = %d", io, cpu)
	}
}
