package translate

// motionFilter smooths flushed pointer deltas with an exponential moving
// average. A factor of 0 disables it; values approaching 1 trade latency for
// smoothness.
type motionFilter struct {
	factor      float64
	lastDX      float64
	lastDY      float64
	initialized bool
}

func newMotionFilter(factor float64) *motionFilter {
	return &motionFilter{factor: factor}
}

func (f *motionFilter) apply(dx, dy float64) (float64, float64) {
	if f.factor <= 0 {
		return dx, dy
	}
	if !f.initialized {
		f.lastDX = dx
		f.lastDY = dy
		f.initialized = true
		return dx, dy
	}
	f.lastDX = dx*(1.0-f.factor) + f.lastDX*f.factor
	f.lastDY = dy*(1.0-f.factor) + f.lastDY*f.factor
	return f.lastDX, f.lastDY
}

func (f *motionFilter) reset() {
	f.lastDX = 0
	f.lastDY = 0
	f.initialized = false
}
