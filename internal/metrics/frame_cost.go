package metrics

type FrameCost struct {
	name    string
	sum     float64
	peak    float64
	samples int
}

func NewFrameCost() *FrameCost {
	return &FrameCost{
		name: "frame_cost_ms",
	}
}

func (c *FrameCost) Name() string {
	return c.name
}

func (c *FrameCost) Observe(f Frame) {
	ms := f.Cost * 1000
	c.sum += ms
	c.peak = max(c.peak, ms)
	c.samples++
}

// Value is the mean cost in milliseconds.
func (c *FrameCost) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *FrameCost) Peak() float64 { return c.peak }

func (c *FrameCost) Reset() {
	c.sum = 0
	c.peak = 0
	c.samples = 0
}
