package app

import "time"

// fpsCounter averages the frame rate over one-second windows.
type fpsCounter struct {
	frames int
	start  time.Time
}

// Tick counts a frame and returns the rate once a second has elapsed.
func (f *fpsCounter) Tick(now time.Time) (float64, bool) {
	if f.start.IsZero() {
		f.start = now
		return 0, false
	}
	f.frames++

	elapsed := now.Sub(f.start)
	if elapsed < time.Second {
		return 0, false
	}

	fps := float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.start = now
	return fps, true
}
