package chart

import (
	"math"
	"testing"
)

func TestStackWiggle_Baseline(t *testing.T) {
	// Bottom to top: LLaMA-3.1, Claude, PaLM-2, Gemini, GPT-4.
	series := [][]float64{
		{8, 9},
		{15, 14},
		{5, 6},
		{20, 18},
		{10, 12},
	}
	stacked := StackWiggle(series)

	if got := stacked[0][0].Lower; got != 0 {
		t.Errorf("first baseline = %v, want 0", got)
	}
	// s2 = 9*0.5 + 14*0.5 + 6*0.5 + 18*0 + 12*0 = 14.5, s1 = 59.
	want := -14.5 / 59
	if got := stacked[0][1].Lower; !approx(got, want) {
		t.Errorf("second baseline = %v, want %v", got, want)
	}
	if got := stacked[4][1].Upper; !approx(got, 59+want) {
		t.Errorf("top edge = %v, want %v", got, 59+want)
	}
}

func TestStackWiggle_ThicknessInvariant(t *testing.T) {
	series := [][]float64{
		{3, 7, 1, 0, 12},
		{4, 4, 9, 2, 1},
		{0, 5, 5, 8, 3},
	}
	stacked := StackWiggle(series)

	for j := range series[0] {
		var want, got float64
		for i := range series {
			want += series[i][j]
			got += stacked[i][j].Thickness()
		}
		if !approx(got, want) {
			t.Errorf("index %d: thickness %v, want %v", j, got, want)
		}
	}

	for i := 1; i < len(stacked); i++ {
		for j := range stacked[i] {
			if stacked[i][j].Lower != stacked[i-1][j].Upper {
				t.Errorf("layer %d index %d does not rest on the layer below", i, j)
			}
		}
	}
}

func TestStackWiggle_NaNPassThrough(t *testing.T) {
	nan := math.NaN()
	series := [][]float64{
		{1, 2},
		{nan, nan},
		{3, 4},
	}
	stacked := StackWiggle(series)

	if !math.IsNaN(stacked[1][0].Upper) {
		t.Errorf("NaN layer upper = %v, want NaN", stacked[1][0].Upper)
	}
	for j := 0; j < 2; j++ {
		if stacked[2][j].Lower != stacked[1][j].Lower {
			t.Errorf("index %d: layer above NaN should rest on its lower edge", j)
		}
	}
	// The offset treats NaN as zero, so the baseline is finite.
	if math.IsNaN(stacked[0][1].Lower) {
		t.Error("baseline should stay finite")
	}
}

func TestStackWiggle_ZeroColumnKeepsBaseline(t *testing.T) {
	series := [][]float64{{2, 0, 5}, {1, 0, 1}}
	stacked := StackWiggle(series)
	if stacked[0][0].Lower != stacked[0][1].Lower {
		t.Errorf("an all-zero column should not shift the baseline: %v vs %v",
			stacked[0][0].Lower, stacked[0][1].Lower)
	}
}

func TestStackWiggle_Empty(t *testing.T) {
	if got := StackWiggle(nil); got != nil {
		t.Errorf("StackWiggle(nil) = %v", got)
	}
	got := StackWiggle([][]float64{{}, {}})
	if len(got) != 2 || len(got[0]) != 0 {
		t.Errorf("StackWiggle(empty layers) = %v", got)
	}
}
