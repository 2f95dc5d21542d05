// Package render turns projected chart geometry into SVG fragments and PNG
// images. Every component renders a complete element carrying a stable id,
// so a client swapping it in replaces the previous render wholesale.
//
// The SVG components live in svg.templ; run `templ generate` after editing it.
package render

import (
	"math"
	"strconv"

	"github.com/JonMunkholm/streamgraph/internal/chart"
)

// Element ids targeted by patches.
const (
	ChartID   = "chart"
	TooltipID = "tooltip"
)

// Endpoints the rendered markup calls back into.
const (
	TooltipPath     = "/api/tooltip"
	TooltipHidePath = "/api/tooltip/hide"
)

// hoverAction records which layer is under the pointer and where, then asks
// for the tooltip.
const hoverAction = "$entity = el.dataset.entity; $pageX = evt.pageX; $pageY = evt.pageY; @get('" + TooltipPath + "')"

const hideAction = "@post('" + TooltipHidePath + "')"

var (
	swatchSize   = strconv.Itoa(chart.LegendSwatch)
	swatchTextX  = strconv.Itoa(chart.LegendSwatch + 5)
	swatchTextY  = num(chart.LegendSwatch / 2.0)
	tickRotation = "rotate(" + strconv.Itoa(chart.TickLabelAngle) + ")"
)

func viewBox(l chart.Layout) string {
	return "0 0 " + num(l.Width) + " " + num(l.Height)
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

// panelStyle places the panel next to the pointer and makes it visible.
func panelStyle(tip chart.Tooltip) string {
	return "left: " + num(tip.Left) + "px; top: " + num(tip.Top) + "px; opacity: 1"
}

func drawable(bar chart.Bar) bool {
	return finite(bar.X) && finite(bar.Y) && finite(bar.Width) && finite(bar.Height) && bar.Height >= 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func num(v float64) string { return chart.FormatCoord(v) }
