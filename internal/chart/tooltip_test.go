package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/JonMunkholm/streamgraph/internal/core"
)

func TestProjectTooltip_Scenario(t *testing.T) {
	ds := mustIngest(t, scenarioCSV)
	tip, err := ProjectTooltip(ds, core.DefaultEntitySet(), "GPT-4", DefaultTooltipLayout(), Pointer{PageX: 200, PageY: 300})
	if err != nil {
		t.Fatalf("ProjectTooltip error: %v", err)
	}

	if tip.Entity.Color != "#e41a1c" {
		t.Errorf("color = %q, want #e41a1c", tip.Entity.Color)
	}
	if tip.Left != 210 || tip.Top != 180 {
		t.Errorf("panel at (%v, %v), want (210, 180)", tip.Left, tip.Top)
	}
	if len(tip.Bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(tip.Bars))
	}

	// Inner area is 110x70; the tallest bar fills it.
	if tip.Bars[0].Value != 10 || tip.Bars[1].Value != 12 {
		t.Errorf("bar values = %v, %v; want 10, 12", tip.Bars[0].Value, tip.Bars[1].Value)
	}
	if !approx(tip.Bars[1].Height, 70) || !approx(tip.Bars[1].Y, 0) {
		t.Errorf("max bar y=%v height=%v, want 0, 70", tip.Bars[1].Y, tip.Bars[1].Height)
	}
	if !approx(tip.Bars[0].Height, 70*10.0/12) {
		t.Errorf("first bar height = %v, want %v", tip.Bars[0].Height, 70*10.0/12)
	}

	step := 110 / 2.1
	if !approx(tip.Bars[0].X, step*0.1) || !approx(tip.Bars[0].Width, step*0.9) {
		t.Errorf("first bar x=%v width=%v", tip.Bars[0].X, tip.Bars[0].Width)
	}

	if len(tip.XTicks) != 2 || tip.XTicks[0].Label != "Jan" || tip.XTicks[1].Label != "Feb" {
		t.Errorf("x ticks = %+v, want Jan, Feb", tip.XTicks)
	}
	if len(tip.YTicks) != 7 || tip.YTicks[6].Label != "12" || !approx(tip.YTicks[6].Pos, 0) {
		t.Errorf("y ticks = %+v", tip.YTicks)
	}
}

func TestProjectTooltip_BarsMonotonic(t *testing.T) {
	ds := mustIngest(t, "Date,Claude\n1/1/24,4\n1/2/24,9\n1/3/24,1\n1/4/24,9\n1/5/24,0\n")
	tip, err := ProjectTooltip(ds, core.DefaultEntitySet(), "Claude", DefaultTooltipLayout(), Pointer{})
	if err != nil {
		t.Fatal(err)
	}

	for i := range tip.Bars {
		for j := range tip.Bars {
			a, b := tip.Bars[i], tip.Bars[j]
			if a.Value > b.Value && !(a.Height > b.Height) {
				t.Errorf("value %v taller than %v but height %v <= %v", a.Value, b.Value, a.Height, b.Height)
			}
			if a.Value == b.Value && !approx(a.Height, b.Height) {
				t.Errorf("equal values %v have heights %v and %v", a.Value, a.Height, b.Height)
			}
		}
	}
	if tip.Bars[4].Height != 0 {
		t.Errorf("zero value height = %v, want 0", tip.Bars[4].Height)
	}
}

func TestProjectTooltip_UnknownEntity(t *testing.T) {
	ds := mustIngest(t, scenarioCSV)
	_, err := ProjectTooltip(ds, core.DefaultEntitySet(), "Mistral", DefaultTooltipLayout(), Pointer{})
	if !errors.Is(err, core.ErrUnknownEntity) {
		t.Errorf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestProjectTooltip_EmptyDataset(t *testing.T) {
	tip, err := ProjectTooltip(nil, core.DefaultEntitySet(), "GPT-4", DefaultTooltipLayout(), Pointer{PageX: 1, PageY: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(tip.Bars) != 0 || len(tip.XTicks) != 0 || len(tip.YTicks) != 0 {
		t.Errorf("empty dataset should project nothing: %+v", tip)
	}
	if tip.Left != 11 || tip.Top != -118 {
		t.Errorf("panel position = (%v, %v)", tip.Left, tip.Top)
	}
}

func TestProjectTooltip_SharedDateSharesBand(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4\n1/1/24,1\n1/1/24,2\n2/1/24,3\n")
	tip, err := ProjectTooltip(ds, core.DefaultEntitySet(), "GPT-4", DefaultTooltipLayout(), Pointer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tip.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(tip.Bars))
	}
	if tip.Bars[0].X != tip.Bars[1].X {
		t.Error("records with the same date should share a band")
	}
	if len(tip.XTicks) != 2 {
		t.Errorf("got %d x ticks, want 2", len(tip.XTicks))
	}
}

func TestProjectTooltip_NaNValues(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4\n1/1/24,x\n2/1/24,5\n")
	tip, err := ProjectTooltip(ds, core.DefaultEntitySet(), "GPT-4", DefaultTooltipLayout(), Pointer{})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(tip.Bars[0].Height) {
		t.Errorf("NaN value height = %v, want NaN", tip.Bars[0].Height)
	}
	if !approx(tip.Bars[1].Height, 70) {
		t.Errorf("max bar height = %v, want 70", tip.Bars[1].Height)
	}
}

func TestProjectTooltip_InvalidDatesShareUnlabelledBand(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4\n1/1/24,1\nbogus,2\n2024-03-01,3\n")
	tip, err := ProjectTooltip(ds, core.DefaultEntitySet(), "GPT-4", DefaultTooltipLayout(), Pointer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tip.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(tip.Bars))
	}
	if tip.Bars[1].X != tip.Bars[2].X {
		t.Error("invalid dates should share one band")
	}

	labels := map[string]bool{}
	for _, tick := range tip.XTicks {
		labels[tick.Label] = true
	}
	if len(tip.XTicks) != 2 || !labels["Jan"] || !labels[""] {
		t.Errorf("x ticks = %+v, want Jan and an empty label", tip.XTicks)
	}
}
