package chart

import (
	"context"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/streamgraph/internal/core"
)

const scenarioCSV = "Date,GPT-4,Gemini,PaLM-2,Claude,LLaMA-3.1\n" +
	"1/1/24,10,20,5,15,8\n" +
	"2/1/24,12,18,6,14,9\n"

func mustIngest(t *testing.T, csv string) *core.Dataset {
	t.Helper()
	ds, err := core.Ingest(context.Background(), strings.NewReader(csv), core.DefaultEntitySet(), core.IngestOptions{})
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	return ds
}

func TestProjectStreamgraph_Scenario(t *testing.T) {
	ds := mustIngest(t, scenarioCSV)
	g := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())

	if len(g.Layers) != 5 {
		t.Fatalf("got %d layers, want 5", len(g.Layers))
	}
	for _, l := range g.Layers {
		if len(l.Points) != 2 {
			t.Errorf("layer %s has %d points, want 2", l.Entity.Name, len(l.Points))
		}
	}

	for j, want := range []float64{58, 59} {
		var sum float64
		for _, l := range g.Layers {
			sum += l.Points[j].Upper - l.Points[j].Lower
		}
		if !approx(sum, want) {
			t.Errorf("index %d: summed thickness %v, want %v", j, sum, want)
		}
	}

	// Pixel space: first date on the left edge, last on the right.
	first := g.Layers[0].Points
	if first[0].X != 0 || !approx(first[1].X, 590) {
		t.Errorf("x positions = %v, %v; want 0, 590", first[0].X, first[1].X)
	}

	// The stack spans the full plot height.
	top := g.Layers[4].Points
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, l := range g.Layers {
		for _, p := range l.Points {
			minY = math.Min(minY, math.Min(p.Y0, p.Y1))
			maxY = math.Max(maxY, math.Max(p.Y0, p.Y1))
		}
	}
	if !approx(minY, 0) || !approx(maxY, 350) {
		t.Errorf("y extent = [%v, %v], want [0, 350]", minY, maxY)
	}
	if top[1].Y1 != minY {
		t.Errorf("top layer at the last date should touch the top edge")
	}

	for _, l := range g.Layers {
		d := l.D()
		if !strings.HasPrefix(d, "M") || !strings.HasSuffix(d, "Z") {
			t.Errorf("layer %s path = %q", l.Entity.Name, d)
		}
	}
}

func TestProjectStreamgraph_OrderFollowsEntities(t *testing.T) {
	// Columns deliberately shuffled.
	ds := mustIngest(t, "LLaMA-3.1,Date,Claude,GPT-4,Gemini,PaLM-2\n1,1/1/24,2,3,4,5\n")
	g := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())

	want := []string{"LLaMA-3.1", "Claude", "PaLM-2", "Gemini", "GPT-4"}
	var layers, legend []string
	for _, l := range g.Layers {
		layers = append(layers, l.Entity.Name)
	}
	for _, e := range g.Legend {
		legend = append(legend, e.Name)
	}
	if !reflect.DeepEqual(layers, want) {
		t.Errorf("layer order = %v, want %v", layers, want)
	}
	if !reflect.DeepEqual(legend, want) {
		t.Errorf("legend order = %v, want %v", legend, want)
	}

	if g.Layers[0].Points[0].Lower != 0 || g.Layers[1].Points[0].Lower != 1 {
		t.Errorf("LLaMA-3.1 should be the bottom layer")
	}
}

func TestProjectStreamgraph_Legend(t *testing.T) {
	g := ProjectStreamgraph(nil, core.DefaultEntitySet(), DefaultStreamLayout())

	if len(g.Legend) != 5 {
		t.Fatalf("legend has %d entries, want 5", len(g.Legend))
	}
	for i, e := range g.Legend {
		if e.X != 600 || e.Y != float64(i*20) {
			t.Errorf("legend %d at (%v, %v), want (600, %d)", i, e.X, e.Y, i*20)
		}
	}
	if g.Legend[4].Color != "#e41a1c" {
		t.Errorf("GPT-4 color = %q", g.Legend[4].Color)
	}
}

func TestProjectStreamgraph_Empty(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4,Gemini,PaLM-2,Claude,LLaMA-3.1\n")
	g := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())

	if len(g.Layers) != 0 {
		t.Errorf("got %d layers, want 0", len(g.Layers))
	}
	if len(g.XTicks) != 0 {
		t.Errorf("got %d ticks, want 0", len(g.XTicks))
	}
	if len(g.Legend) != 5 {
		t.Errorf("legend should still list every entity")
	}
}

func TestProjectStreamgraph_MissingColumnIsEmptyLayer(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4,Gemini,PaLM-2,Claude\n1/1/24,1,2,3,4\n2/1/24,2,3,4,5\n")
	g := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())

	llama := g.Layers[0]
	if llama.D() != "" {
		t.Errorf("missing column should draw nothing, got %q", llama.D())
	}
	if g.Layers[1].D() == "" {
		t.Error("layer above a NaN layer should still draw")
	}
}

func TestProjectStreamgraph_InvalidDateSplitsLayer(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4\n1/1/24,1\n1/2/24,2\nbad,3\n1/4/24,4\n1/5/24,5\n")
	g := ProjectStreamgraph(ds, core.EntitySet{{Name: "GPT-4", Color: "#e41a1c"}}, DefaultStreamLayout())

	p := g.Layers[0].Points[2]
	if !math.IsNaN(p.X) {
		t.Errorf("invalid date x = %v, want NaN", p.X)
	}
	if d := g.Layers[0].D(); strings.Count(d, "M") != 2 {
		t.Errorf("expected two segments, got %q", d)
	}
}

func TestProjectStreamgraph_Pure(t *testing.T) {
	ds := mustIngest(t, scenarioCSV)
	a := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())
	b := ProjectStreamgraph(ds, core.DefaultEntitySet(), DefaultStreamLayout())

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Error("projection is not deterministic")
	}
}

func TestProjectStreamgraph_JSONNulls(t *testing.T) {
	ds := mustIngest(t, "Date,GPT-4\nbad,x\n")
	g := ProjectStreamgraph(ds, core.EntitySet{{Name: "GPT-4", Color: "#e41a1c"}}, DefaultStreamLayout())

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(raw), `"value":null`) {
		t.Errorf("NaN value should encode as null: %s", raw)
	}
}
