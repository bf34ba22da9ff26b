package app

import (
	"testing"
	"time"
)

func TestFPSCounter(t *testing.T) {
	var f fpsCounter
	start := time.Unix(100, 0)

	if _, ok := f.Tick(start); ok {
		t.Fatal("first tick should only start the window")
	}

	var (
		fps float64
		ok  bool
	)
	for i := 1; i <= 60; i++ {
		fps, ok = f.Tick(start.Add(time.Duration(i) * time.Second / 60))
		if ok && i < 60 {
			t.Fatalf("reported after %d frames", i)
		}
	}
	if !ok {
		t.Fatal("expected a report after one second")
	}
	if fps != 60 {
		t.Errorf("fps = %v, want 60", fps)
	}

	// The window restarts after a report.
	if _, ok := f.Tick(start.Add(time.Second + time.Millisecond)); ok {
		t.Error("expected a fresh window after reporting")
	}
}
