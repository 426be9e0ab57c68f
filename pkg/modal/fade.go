package modal

import "time"

// fade models a linear opacity transition so headless callers can observe
// intermediate values the way a browser's compositor would produce them.
type fade struct {
	start time.Time
	from  float64
	to    float64
	dur   time.Duration
}

func newFade(start time.Time, from, to float64, dur time.Duration) *fade {
	return &fade{start: start, from: from, to: to, dur: dur}
}

// at returns the interpolated opacity at the given instant, clamped to the
// transition's endpoints.
func (f *fade) at(now time.Time) float64 {
	elapsed := now.Sub(f.start)
	if elapsed <= 0 {
		return f.from
	}
	if elapsed >= f.dur {
		return f.to
	}
	frac := float64(elapsed) / float64(f.dur)
	return f.from + (f.to-f.from)*frac
}
