package chart

import (
	"math"
	"strconv"
	"strings"
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

// Map returns the range position of v.
//
// A collapsed domain (D0 == D1) maps every value to the middle of the range.
// NaN in the domain or the input yields NaN.
func (s LinearScale) Map(v float64) float64 {
	span := s.D1 - s.D0
	var t float64
	switch {
	case math.IsNaN(span):
		return math.NaN()
	case span == 0:
		t = 0.5
	default:
		t = (v - s.D0) / span
	}
	return s.R0 + t*(s.R1-s.R0)
}

// Ticks returns roughly count round values spanning the domain.
func (s LinearScale) Ticks(count int) []float64 {
	return ticks(s.D0, s.D1, float64(count))
}

// TickFormat returns a formatter with just enough decimals to tell
// neighbouring ticks apart, grouping thousands with commas.
func (s LinearScale) TickFormat(count int) func(float64) string {
	step := tickStep(s.D0, s.D1, float64(count))
	precision := 0
	if step != 0 && !math.IsNaN(step) && !math.IsInf(step, 0) {
		precision = max(0, -int(math.Floor(math.Log10(math.Abs(step)))))
	}
	return func(v float64) string {
		return formatFixed(v, precision)
	}
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks a 1-2-5 step and the integer tick indexes i1..i2 covering
// [start, stop]. A negative inc means the step is 1/-inc.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func ticks(start, stop, count float64) []float64 {
	if !(count > 0) || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			out[i] = (i1 + float64(i)) / -inc
		} else {
			out[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}

// tickStep returns the distance between ticks, negative for a reversed domain.
func tickStep(start, stop, count float64) float64 {
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, count)
	if inc < 0 {
		inc = 1 / -inc
	}
	if reverse {
		return -inc
	}
	return inc
}

// formatFixed renders v with the given decimals and comma thousands groups.
// Negative numbers use the typographic minus sign.
func formatFixed(v float64, precision int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', precision, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 && strings.Trim(s, "0.") != "" {
		b.WriteString("−")
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// BandScale maps discrete keys to evenly spaced bands.
type BandScale struct {
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale lays out one band per distinct key, in first-seen order, over
// [r0, r1]. Padding is a fraction of the step, applied between bands and at
// both ends; the leftover space is centered.
func NewBandScale(keys []string, r0, r1, padding float64) BandScale {
	s := BandScale{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		if _, ok := s.index[k]; !ok {
			s.index[k] = len(s.index)
		}
	}

	reverse := r1 < r0
	lo, hi := r0, r1
	if reverse {
		lo, hi = r1, r0
	}
	n := float64(len(s.index))
	s.step = (hi - lo) / math.Max(1, n-padding+padding*2)
	s.start = lo + (hi-lo-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)
	if reverse {
		// Bands run right to left.
		s.start = s.start + s.step*(n-1)
		s.step = -s.step
	}
	return s
}

// Map returns the start of key's band and whether key is in the domain.
func (s BandScale) Map(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return math.NaN(), false
	}
	return s.start + s.step*float64(i), true
}

// Bandwidth is the width of every band.
func (s BandScale) Bandwidth() float64 { return s.bandwidth }

// Len is the number of distinct keys.
func (s BandScale) Len() int { return len(s.index) }
