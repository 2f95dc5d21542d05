package chart

import (
	"encoding/json"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/streamgraph/internal/core"
)

// Legend geometry, relative to the plot area origin.
const (
	LegendOffset  = 10 // gap between plot area and legend
	LegendRowStep = 20
	LegendSwatch  = 15
)

// TimeTickCount is the tick count requested for the streamgraph time axis.
const TimeTickCount = 10

// LayerPoint is one record's position within a layer.
type LayerPoint struct {
	Date  pgtype.Date
	Value float64 // raw value
	Lower float64 // stacked extent, data space
	Upper float64
	X     float64 // pixel space, relative to the plot area
	Y0    float64
	Y1    float64
}

// MarshalJSON writes non-finite numbers as null.
func (p LayerPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  pgtype.Date `json:"date"`
		Value *float64    `json:"value"`
		Lower *float64    `json:"lower"`
		Upper *float64    `json:"upper"`
		X     *float64    `json:"x"`
		Y0    *float64    `json:"y0"`
		Y1    *float64    `json:"y1"`
	}{p.Date, finite(p.Value), finite(p.Lower), finite(p.Upper), finite(p.X), finite(p.Y0), finite(p.Y1)})
}

// Layer is one entity's band.
type Layer struct {
	Entity core.Entity  `json:"entity"`
	Points []LayerPoint `json:"points"`
	Path   Path         `json:"-"`
}

// D is the SVG path data of the layer's smoothed area.
func (l Layer) D() string { return l.Path.SVG() }

// MarshalJSON adds the path data to the encoded layer.
func (l Layer) MarshalJSON() ([]byte, error) {
	type plain Layer
	return json.Marshal(struct {
		plain
		D string `json:"d"`
	}{plain(l), l.D()})
}

// LegendEntry is one swatch and label, positioned relative to the plot area.
type LegendEntry struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Streamgraph is the full projected chart, ready to render.
type Streamgraph struct {
	Layout Layout        `json:"layout"`
	Layers []Layer       `json:"layers"`
	Legend []LegendEntry `json:"legend"`
	XTicks []AxisTick    `json:"xTicks"`
	// YDomain is the stacked extent [min lower, max upper]; NaN when there
	// is nothing to stack.
	YDomain [2]float64 `json:"-"`
}

// ProjectStreamgraph stacks the dataset's entity values with the wiggle
// offset and maps them to pixels. It is a pure function of its inputs.
//
// Layers follow entity order, bottom first, with one point per record in
// record order. An empty dataset yields no layers but keeps the legend.
func ProjectStreamgraph(ds *core.Dataset, entities core.EntitySet, layout Layout) Streamgraph {
	g := Streamgraph{
		Layout:  layout,
		Legend:  legend(entities, layout),
		YDomain: [2]float64{math.NaN(), math.NaN()},
	}

	m := ds.Len()
	if m == 0 || len(entities) == 0 {
		return g
	}

	series := make([][]float64, len(entities))
	for i, e := range entities {
		series[i] = make([]float64, m)
		for j, rec := range ds.Records {
			series[i][j] = rec.Value(e.Name)
		}
	}
	stacked := StackWiggle(series)

	lo, hi := math.NaN(), math.NaN()
	for _, layer := range stacked {
		for _, p := range layer {
			lo = nanMin(lo, p.Lower)
			hi = nanMax(hi, p.Upper)
		}
	}
	g.YDomain = [2]float64{lo, hi}

	d0, d1 := dateExtent(ds.Records)
	x := NewTimeScale(d0, d1, 0, layout.InnerWidth())
	y := LinearScale{D0: lo, D1: hi, R0: layout.InnerHeight(), R1: 0}

	xs := make([]float64, m)
	for j, rec := range ds.Records {
		xs[j] = math.NaN()
		if rec.Date.Valid {
			xs[j] = x.Map(rec.Date.Time)
		}
	}

	g.Layers = make([]Layer, len(entities))
	for i, e := range entities {
		points := make([]LayerPoint, m)
		y0s := make([]float64, m)
		y1s := make([]float64, m)
		for j, rec := range ds.Records {
			sp := stacked[i][j]
			y0s[j] = y.Map(sp.Lower)
			y1s[j] = y.Map(sp.Upper)
			points[j] = LayerPoint{
				Date:  rec.Date,
				Value: series[i][j],
				Lower: sp.Lower,
				Upper: sp.Upper,
				X:     xs[j],
				Y0:    y0s[j],
				Y1:    y1s[j],
			}
		}
		g.Layers[i] = Layer{Entity: e, Points: points, Path: BasisArea(xs, y0s, y1s)}
	}

	g.XTicks = x.Ticks(TimeTickCount)
	return g
}

func legend(entities core.EntitySet, layout Layout) []LegendEntry {
	out := make([]LegendEntry, len(entities))
	for i, e := range entities {
		out[i] = LegendEntry{
			Name:  e.Name,
			Color: e.Color,
			X:     layout.InnerWidth() + LegendOffset,
			Y:     float64(i * LegendRowStep),
		}
	}
	return out
}

// dateExtent returns the earliest and latest valid dates, zero if none.
func dateExtent(records []core.Record) (first, last time.Time) {
	for _, rec := range records {
		if !rec.Date.Valid {
			continue
		}
		t := rec.Date.Time
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}
	return first, last
}

func nanMin(a, b float64) float64 {
	if math.IsNaN(b) || (!math.IsNaN(a) && a <= b) {
		return a
	}
	return b
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(b) || (!math.IsNaN(a) && a >= b) {
		return a
	}
	return b
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
