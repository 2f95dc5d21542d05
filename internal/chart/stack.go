package chart

import "math"

// StackPoint is one layer's vertical extent at one index.
type StackPoint struct {
	Lower float64
	Upper float64
}

// Thickness is Upper - Lower.
func (p StackPoint) Thickness() float64 { return p.Upper - p.Lower }

// StackWiggle stacks series bottom to top in the given order and shifts the
// whole stack at each index to minimise the weighted change in layer slopes.
//
// series[i][j] is layer i at index j; every layer must have the same length.
// NaN values count as zero when computing the shift but are kept in the
// output, so a NaN layer has a NaN upper edge and the layer above it rests on
// its lower edge.
func StackWiggle(series [][]float64) [][]StackPoint {
	n := len(series)
	if n == 0 {
		return nil
	}
	m := len(series[0])

	out := make([][]StackPoint, n)
	for i := range out {
		out[i] = make([]StackPoint, m)
	}
	if m == 0 {
		return out
	}

	baseline := make([]float64, m)
	y := 0.0
	for j := 1; j < m; j++ {
		var s1, s2 float64
		for i := 0; i < n; i++ {
			cur := orZero(series[i][j])
			s3 := (cur - orZero(series[i][j-1])) / 2
			for k := 0; k < i; k++ {
				s3 += orZero(series[k][j]) - orZero(series[k][j-1])
			}
			s1 += cur
			s2 += s3 * cur
		}
		baseline[j-1] = y
		if s1 != 0 {
			y -= s2 / s1
		}
	}
	baseline[m-1] = y

	for j := 0; j < m; j++ {
		out[0][j] = StackPoint{Lower: baseline[j], Upper: baseline[j] + series[0][j]}
	}
	for i := 1; i < n; i++ {
		for j := 0; j < m; j++ {
			below := out[i-1][j]
			base := below.Upper
			if math.IsNaN(base) {
				base = below.Lower
			}
			out[i][j] = StackPoint{Lower: base, Upper: base + series[i][j]}
		}
	}
	return out
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
