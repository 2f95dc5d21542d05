package chart

import (
	"math"
	"sort"
	"time"
)

// TimeScale maps instants onto a pixel range. Calendar math is done in UTC.
type TimeScale struct {
	D0, D1 time.Time
	R0, R1 float64
	valid  bool
}

// NewTimeScale builds a scale over [d0, d1]. A zero d0 or d1 makes an
// empty domain that maps everything to NaN.
func NewTimeScale(d0, d1 time.Time, r0, r1 float64) TimeScale {
	return TimeScale{D0: d0, D1: d1, R0: r0, R1: r1, valid: !d0.IsZero() && !d1.IsZero()}
}

// Map returns the range position of t.
func (s TimeScale) Map(t time.Time) float64 {
	if !s.valid {
		return math.NaN()
	}
	return s.linear().Map(msec(t))
}

func (s TimeScale) linear() LinearScale {
	return LinearScale{D0: msec(s.D0), D1: msec(s.D1), R0: s.R0, R1: s.R1}
}

func msec(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// AxisTick is a labelled position along an axis.
type AxisTick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

const (
	durationHour  = time.Hour
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

type calendarUnit int

const (
	unitHour calendarUnit = iota
	unitDay
	unitWeek
	unitMonth
	unitYear
)

type tickInterval struct {
	unit calendarUnit
	step int
	dur  time.Duration
}

// Candidate spacings, finest first. Dates are whole days, so nothing finer
// than an hour is ever picked for a non-empty span.
var tickIntervals = []tickInterval{
	{unitHour, 1, durationHour},
	{unitHour, 3, 3 * durationHour},
	{unitHour, 6, 6 * durationHour},
	{unitHour, 12, 12 * durationHour},
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

// Ticks returns about count ticks on calendar boundaries, labelled with the
// coarsest unit that still tells them apart (year, month, week or day).
func (s TimeScale) Ticks(count int) []AxisTick {
	if !s.valid || count <= 0 {
		return nil
	}
	start, stop := s.D0.UTC(), s.D1.UTC()
	if stop.Before(start) {
		start, stop = stop, start
	}

	var times []time.Time
	if start.Equal(stop) {
		times = []time.Time{start}
	} else {
		times = pickInterval(start, stop, count).rangeUTC(start, stop.Add(time.Millisecond))
	}

	out := make([]AxisTick, len(times))
	for i, t := range times {
		out[i] = AxisTick{Pos: s.Map(t), Label: timeLabel(t)}
	}
	return out
}

func pickInterval(start, stop time.Time, count int) tickInterval {
	target := stop.Sub(start) / time.Duration(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return tickIntervals[i].dur > target
	})

	switch {
	case i == len(tickIntervals):
		years := func(t time.Time) float64 { return msec(t) / float64(durationYear.Milliseconds()) }
		step := int(math.Floor(tickStep(years(start), years(stop), float64(count))))
		return tickInterval{unit: unitYear, step: max(step, 1), dur: durationYear}
	case i == 0:
		return tickIntervals[0]
	}

	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if float64(target)/float64(lo.dur) < float64(hi.dur)/float64(target) {
		return lo
	}
	return hi
}

// rangeUTC lists every interval boundary t with start <= t < stop.
func (iv tickInterval) rangeUTC(start, stop time.Time) []time.Time {
	var out []time.Time
	for t := iv.ceil(start); t.Before(stop); t = iv.next(t) {
		if iv.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ceil rounds t up to the next boundary of the base unit.
func (iv tickInterval) ceil(t time.Time) time.Time {
	var f time.Time
	switch iv.unit {
	case unitHour:
		f = t.Truncate(time.Hour)
	case unitDay:
		f = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case unitWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		f = d.AddDate(0, 0, -int(d.Weekday()))
	case unitMonth:
		f = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case unitYear:
		f = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if f.Before(t) {
		f = iv.next(f)
	}
	return f
}

// next advances one base unit.
func (iv tickInterval) next(t time.Time) time.Time {
	switch iv.unit {
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

// matches filters base-unit boundaries down to every step-th one.
func (iv tickInterval) matches(t time.Time) bool {
	if iv.step <= 1 {
		return true
	}
	switch iv.unit {
	case unitHour:
		return t.Hour()%iv.step == 0
	case unitDay:
		return (t.Day()-1)%iv.step == 0
	case unitMonth:
		return (int(t.Month())-1)%iv.step == 0
	case unitYear:
		return t.Year()%iv.step == 0
	}
	return true
}

// timeLabel picks the label format from the most significant non-zero field.
func timeLabel(t time.Time) string {
	switch {
	case t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0:
		return t.Format("03 PM")
	case t.Day() != 1:
		if t.Weekday() != time.Sunday {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
