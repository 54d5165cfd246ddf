package memory

import (
	"runtime/debug"
	"testing"
)

func resetMemoryLimit(t *testing.T) {
	t.Helper()
	old := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(old) })
}

func TestConfigureFromEnvNoEnvironment(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "")
	t.Setenv("MEMORY_RATIO", "")

	result := ConfigureFromEnv()

	if result.Configured {
		t.Error("Configured = true, want false when no env vars set")
	}
	if result.Source != sourceNone {
		t.Errorf("Source = %q, want %q", result.Source, sourceNone)
	}
	if result.ContainerLimit != 0 || result.GoMemLimit != 0 {
		t.Errorf("limits = %d/%d, want 0/0", result.ContainerLimit, result.GoMemLimit)
	}
}

func TestConfigureFromEnvMemoryLimit(t *testing.T) {
	resetMemoryLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1073741824") // 1 GiB
	t.Setenv("MEMORY_RATIO", "")

	result := ConfigureFromEnv()

	if !result.Configured {
		t.Fatal("Configured = false, want true when MEMORY_LIMIT is set")
	}
	if result.Source != sourceMEMORYLIMIT {
		t.Errorf("Source = %q, want %q", result.Source, sourceMEMORYLIMIT)
	}
	if result.ContainerLimit != 1073741824 {
		t.Errorf("ContainerLimit = %d, want 1073741824", result.ContainerLimit)
	}
	ratio := float64(DefaultMemoryRatio)
	want := int64(float64(1073741824) * ratio)
	if result.GoMemLimit != want {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, want)
	}
	if result.Ratio != DefaultMemoryRatio {
		t.Errorf("Ratio = %f, want %f", result.Ratio, DefaultMemoryRatio)
	}
}

func TestConfigureFromEnvCustomRatio(t *testing.T) {
	resetMemoryLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "2147483648") // 2 GiB
	t.Setenv("MEMORY_RATIO", "0.75")

	result := ConfigureFromEnv()

	if !result.Configured {
		t.Fatal("Configured = false, want true")
	}
	if result.Ratio != 0.75 {
		t.Errorf("Ratio = %f, want 0.75", result.Ratio)
	}
	want := int64(float64(2147483648) * 0.75)
	if result.GoMemLimit != want {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, want)
	}
}

func TestConfigureFromEnvInvalidValues(t *testing.T) {
	t.Run("bad memory limit", func(t *testing.T) {
		t.Setenv("GOMEMLIMIT", "")
		t.Setenv("MEMORY_LIMIT", "not-a-number")

		result := ConfigureFromEnv()
		if result.Configured {
			t.Error("Configured = true, want false with invalid MEMORY_LIMIT")
		}
		if result.Source != sourceNone {
			t.Errorf("Source = %q, want %q", result.Source, sourceNone)
		}
	})

	for _, ratio := range []string{"not-a-number", "0", "-0.5", "1.5"} {
		t.Run("bad ratio "+ratio, func(t *testing.T) {
			resetMemoryLimit(t)
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", "1073741824")
			t.Setenv("MEMORY_RATIO", ratio)

			result := ConfigureFromEnv()
			if !result.Configured {
				t.Fatal("Configured = false, want true even with invalid ratio")
			}
			if result.Ratio != DefaultMemoryRatio {
				t.Errorf("Ratio = %f, want default %f", result.Ratio, DefaultMemoryRatio)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
		{1610612736, "1.5 GiB"},
		{1099511627776, "1.0 TiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
