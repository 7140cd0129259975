package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Start_EmptyModeIsNoop(t *testing.T) {
	stop := Profiler{Path: t.TempDir()}.Start()

	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected no-op stopper, got %T", stop)
	}

	stop.Stop()
}

func TestProfiler_Start_UnknownModeIsNoop(t *testing.T) {
	stop := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()

	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected no-op stopper, got %T", stop)
	}

	stop.Stop()
}

func TestModes_Sorted(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}
}
