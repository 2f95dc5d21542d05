package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/streamgraph/internal/core"
)

// Tooltip panel constants.
const (
	BandPadding      = 0.1
	TooltipTickCount = 5
	TickLabelAngle   = -65 // degrees, tooltip x labels

	// Panel offset from the pointer, in page pixels.
	PanelOffsetX = 10
	PanelOffsetY = -120
)

// Pointer is the page position of the hovering pointer.
type Pointer struct {
	PageX float64
	PageY float64
}

// Bar is one date's rectangle, relative to the plot area.
type Bar struct {
	Date   pgtype.Date
	Value  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MarshalJSON writes non-finite numbers as null.
func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   pgtype.Date `json:"date"`
		Value  *float64    `json:"value"`
		X      *float64    `json:"x"`
		Y      *float64    `json:"y"`
		Width  *float64    `json:"width"`
		Height *float64    `json:"height"`
	}{b.Date, finite(b.Value), finite(b.X), finite(b.Y), finite(b.Width), finite(b.Height)})
}

// Tooltip is the hover bar chart for one entity.
type Tooltip struct {
	Entity core.Entity `json:"entity"`
	Layout Layout      `json:"layout"`
	Left   float64     `json:"left"` // panel position in page pixels
	Top    float64     `json:"top"`
	Bars   []Bar       `json:"bars"`
	XTicks []AxisTick  `json:"xTicks"`
	YTicks []AxisTick  `json:"yTicks"`
}

// ProjectTooltip lays out one bar per record for the named entity.
//
// Bars sit in bands keyed by date in record order; records sharing a date
// share a band. The y axis runs from 0 to the entity's largest value.
// Returns core.ErrUnknownEntity when name is not configured.
func ProjectTooltip(ds *core.Dataset, entities core.EntitySet, name string, layout Layout, ptr Pointer) (Tooltip, error) {
	entity, ok := entities.Lookup(name)
	if !ok {
		return Tooltip{}, fmt.Errorf("%w: %q", core.ErrUnknownEntity, name)
	}

	tip := Tooltip{
		Entity: entity,
		Layout: layout,
		Left:   ptr.PageX + PanelOffsetX,
		Top:    ptr.PageY + PanelOffsetY,
	}

	series := ds.Series(name)
	if len(series) == 0 {
		return tip, nil
	}

	keys := make([]string, len(series))
	peak := math.NaN()
	for i, p := range series {
		keys[i] = dateKey(p.Date)
		peak = nanMax(peak, p.Value)
	}

	x := NewBandScale(keys, 0, layout.InnerWidth(), BandPadding)
	y := LinearScale{D0: 0, D1: peak, R0: layout.InnerHeight(), R1: 0}

	tip.Bars = make([]Bar, len(series))
	for i, p := range series {
		bx, _ := x.Map(keys[i])
		by := y.Map(p.Value)
		tip.Bars[i] = Bar{
			Date:   p.Date,
			Value:  p.Value,
			X:      bx,
			Y:      by,
			Width:  x.Bandwidth(),
			Height: layout.InnerHeight() - by,
		}
	}

	seen := make(map[string]bool, len(keys))
	for i, p := range series {
		if seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		bx, _ := x.Map(keys[i])
		tip.XTicks = append(tip.XTicks, AxisTick{Pos: bx + x.Bandwidth()/2, Label: monthLabel(p.Date)})
	}

	format := y.TickFormat(TooltipTickCount)
	for _, v := range y.Ticks(TooltipTickCount) {
		tip.YTicks = append(tip.YTicks, AxisTick{Pos: y.Map(v), Label: format(v)})
	}

	return tip, nil
}

// dateKey identifies a band. All invalid dates share one band.
func dateKey(d pgtype.Date) string {
	if !d.Valid {
		return "invalid"
	}
	return strconv.FormatInt(d.Time.Unix(), 10)
}

func monthLabel(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("Jan")
}
