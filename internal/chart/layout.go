package chart

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout is a canvas size plus its margins, in logical pixels.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// InnerWidth is the plot area width.
func (l Layout) InnerWidth() float64 {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// InnerHeight is the plot area height.
func (l Layout) InnerHeight() float64 {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}

// StreamLayout returns the streamgraph canvas. The right margin holds the legend.
func StreamLayout(width, height int) Layout {
	return Layout{
		Width:  float64(width),
		Height: float64(height),
		Margin: Margin{Top: 20, Right: 160, Bottom: 30, Left: 50},
	}
}

// TooltipLayout returns the hover panel canvas.
func TooltipLayout(width, height int) Layout {
	return Layout{
		Width:  float64(width),
		Height: float64(height),
		Margin: Margin{Top: 10, Right: 10, Bottom: 20, Left: 30},
	}
}

// DefaultStreamLayout is the 800x400 streamgraph canvas.
func DefaultStreamLayout() Layout { return StreamLayout(800, 400) }

// DefaultTooltipLayout is the 150x100 tooltip canvas.
func DefaultTooltipLayout() Layout { return TooltipLayout(150, 100) }
