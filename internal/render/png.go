package render

import (
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/JonMunkholm/streamgraph/internal/chart"
)

// curveSteps is how many line segments approximate each cubic segment.
const curveSteps = 8

// PNG rasterizes the streamgraph, legend and time axis.
func PNG(w io.Writer, g chart.Streamgraph) error {
	l := g.Layout
	r, err := gochart.PNG(int(l.Width), int(l.Height))
	if err != nil {
		return fmt.Errorf("png renderer: %w", err)
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)
	r.SetFontSize(10)
	r.SetFontColor(drawing.ColorBlack)

	// Background.
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(int(l.Width), 0)
	r.LineTo(int(l.Width), int(l.Height))
	r.LineTo(0, int(l.Height))
	r.Close()
	r.Fill()

	ox, oy := l.Margin.Left, l.Margin.Top
	px := func(v float64) int { return int(v + ox + 0.5) }
	py := func(v float64) int { return int(v + oy + 0.5) }

	for _, layer := range g.Layers {
		r.SetFillColor(hexColor(layer.Entity.Color))
		for _, poly := range layer.Path.Flatten(curveSteps) {
			if len(poly) < 3 {
				continue
			}
			r.MoveTo(px(poly[0].X), py(poly[0].Y))
			for _, p := range poly[1:] {
				r.LineTo(px(p.X), py(p.Y))
			}
			r.Close()
			r.Fill()
		}
	}

	// Time axis.
	r.SetStrokeColor(drawing.ColorBlack)
	r.SetStrokeWidth(1)
	axisY := py(l.InnerHeight())
	r.MoveTo(px(0), axisY)
	r.LineTo(px(l.InnerWidth()), axisY)
	r.Stroke()
	for _, t := range g.XTicks {
		if !finite(t.Pos) {
			continue
		}
		x := px(t.Pos)
		r.MoveTo(x, axisY)
		r.LineTo(x, axisY+6)
		r.Stroke()
		box := r.MeasureText(t.Label)
		r.Text(t.Label, x-box.Width()/2, axisY+9+box.Height())
	}

	// Legend.
	for _, e := range g.Legend {
		x, y := px(e.X), py(e.Y)
		r.SetFillColor(hexColor(e.Color))
		r.MoveTo(x, y)
		r.LineTo(x+chart.LegendSwatch, y)
		r.LineTo(x+chart.LegendSwatch, y+chart.LegendSwatch)
		r.LineTo(x, y+chart.LegendSwatch)
		r.Close()
		r.Fill()
		box := r.MeasureText(e.Name)
		r.Text(e.Name, x+chart.LegendSwatch+5, y+chart.LegendSwatch/2+box.Height()/2)
	}

	return r.Save(w)
}

// hexColor converts "#rrggbb" to a drawing color.
func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
