package chart

import (
	"math"
	"reflect"
	"testing"
	"time"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestLinearScale_Map(t *testing.T) {
	tests := []struct {
		name  string
		scale LinearScale
		in    float64
		want  float64
	}{
		{"identity", LinearScale{0, 10, 0, 10}, 5, 5},
		{"inverted range", LinearScale{0, 10, 100, 0}, 2.5, 75},
		{"negative domain", LinearScale{-10, 10, 0, 200}, 0, 100},
		{"extrapolates", LinearScale{0, 10, 0, 100}, 20, 200},
		{"collapsed domain maps to middle", LinearScale{3, 3, 0, 100}, 42, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scale.Map(tt.in); !approx(got, tt.want) {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := (LinearScale{math.NaN(), math.NaN(), 0, 100}).Map(1); !math.IsNaN(got) {
		t.Errorf("NaN domain Map = %v, want NaN", got)
	}
}

func TestLinearScale_Ticks(t *testing.T) {
	tests := []struct {
		name  string
		d0    float64
		d1    float64
		count int
		want  []float64
	}{
		{"tens", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"tenths", 0, 1, 10, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"tooltip range", 0, 12, 5, []float64{0, 2, 4, 6, 8, 10, 12}},
		{"uneven bounds", 3, 17, 5, []float64{4, 6, 8, 10, 12, 14, 16}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"single value", 7, 7, 5, []float64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearScale{D0: tt.d0, D1: tt.d1}.Ticks(tt.count)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ticks() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (LinearScale{D0: 0, D1: math.NaN()}).Ticks(5); got != nil {
		t.Errorf("NaN domain Ticks = %v, want nil", got)
	}
}

func TestLinearScale_TickFormat(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		in     float64
		want   string
	}{
		{"integers", 0, 12, 4, "4"},
		{"tenths", 0, 1, 0.3, "0.3"},
		{"thousands", 0, 5000, 2000, "2,000"},
		{"negative", -10, 10, -4, "−4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := LinearScale{D0: tt.d0, D1: tt.d1}.TickFormat(5)
			if got := format(tt.in); got != tt.want {
				t.Errorf("format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{0, 0, "0"},
		{1234.5, 1, "1,234.5"},
		{1000000, 0, "1,000,000"},
		{0.25, 2, "0.25"},
		{-3, 0, "−3"},
		{-0.0001, 1, "0.0"},
	}
	for _, tt := range tests {
		if got := formatFixed(tt.v, tt.precision); got != tt.want {
			t.Errorf("formatFixed(%v, %d) = %q, want %q", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestBandScale(t *testing.T) {
	x := NewBandScale([]string{"a", "b"}, 0, 110, 0.1)

	step := 110 / 2.1
	if !approx(x.Bandwidth(), step*0.9) {
		t.Errorf("Bandwidth() = %v, want %v", x.Bandwidth(), step*0.9)
	}

	a, ok := x.Map("a")
	if !ok || !approx(a, step*0.1) {
		t.Errorf("Map(a) = %v, %v; want %v", a, ok, step*0.1)
	}
	b, _ := x.Map("b")
	if !approx(b-a, step) {
		t.Errorf("band spacing = %v, want %v", b-a, step)
	}
	if end := b + x.Bandwidth() + step*0.1; !approx(end, 110) {
		t.Errorf("outer padding not symmetric, last band ends padding at %v", end)
	}

	if _, ok := x.Map("c"); ok {
		t.Error("unknown key should not map")
	}
}

func TestBandScale_DuplicateKeysShareBand(t *testing.T) {
	x := NewBandScale([]string{"a", "b", "a"}, 0, 100, 0.1)
	if x.Len() != 2 {
		t.Errorf("Len() = %d, want 2", x.Len())
	}
}

func TestBandScale_SingleBand(t *testing.T) {
	x := NewBandScale([]string{"only"}, 0, 100, 0.1)
	pos, _ := x.Map("only")
	// step = 100 / max(1, 1 - 0.1 + 0.2) = 100/1.1
	step := 100 / 1.1
	if !approx(x.Bandwidth(), step*0.9) || !approx(pos, step*0.1) {
		t.Errorf("single band at %v width %v", pos, x.Bandwidth())
	}
}

func TestTimeScale_Map(t *testing.T) {
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	x := NewTimeScale(d0, d1, 0, 590)

	if got := x.Map(d0); got != 0 {
		t.Errorf("Map(d0) = %v, want 0", got)
	}
	if got := x.Map(d1); !approx(got, 590) {
		t.Errorf("Map(d1) = %v, want 590", got)
	}
	mid := d0.Add(d1.Sub(d0) / 2)
	if got := x.Map(mid); !approx(got, 295) {
		t.Errorf("Map(mid) = %v, want 295", got)
	}

	same := NewTimeScale(d0, d0, 0, 590)
	if got := same.Map(d0); got != 295 {
		t.Errorf("single-date Map = %v, want 295", got)
	}

	empty := NewTimeScale(time.Time{}, time.Time{}, 0, 590)
	if got := empty.Map(d0); !math.IsNaN(got) {
		t.Errorf("empty domain Map = %v, want NaN", got)
	}
	if empty.Ticks(10) != nil {
		t.Error("empty domain should have no ticks")
	}
}

func TestTimeScale_Ticks(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		d0, d1    time.Time
		wantCount int
		want      map[int]string // index -> label
	}{
		{
			name:      "one month uses every other day",
			d0:        day(2024, 1, 1),
			d1:        day(2024, 2, 1),
			wantCount: 17,
			want:      map[int]string{0: "2024", 1: "Wed 03", 3: "Jan 07", 16: "February"},
		},
		{
			name:      "one year uses months",
			d0:        day(2023, 1, 15),
			d1:        day(2024, 1, 15),
			wantCount: 12,
			want:      map[int]string{0: "February", 11: "2024"},
		},
		{
			name:      "ten weeks uses sundays",
			d0:        day(2024, 1, 1),
			d1:        day(2024, 3, 11),
			wantCount: 10,
			want:      map[int]string{0: "Jan 07", 1: "Jan 14"},
		},
		{
			name:      "single date",
			d0:        day(2024, 3, 14),
			d1:        day(2024, 3, 14),
			wantCount: 1,
			want:      map[int]string{0: "Thu 14"},
		},
		{
			name:      "one day uses hours",
			d0:        day(2024, 3, 14),
			d1:        day(2024, 3, 15),
			wantCount: 9,
			want:      map[int]string{0: "Thu 14", 1: "03 AM", 4: "12 PM", 8: "Fri 15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := NewTimeScale(tt.d0, tt.d1, 0, 590).Ticks(10)
			if len(ticks) != tt.wantCount {
				t.Fatalf("got %d ticks, want %d: %+v", len(ticks), tt.wantCount, ticks)
			}
			for i, label := range tt.want {
				if ticks[i].Label != label {
					t.Errorf("tick %d label = %q, want %q", i, ticks[i].Label, label)
				}
			}
			for i := 1; i < len(ticks); i++ {
				if ticks[i].Pos <= ticks[i-1].Pos {
					t.Errorf("tick positions not increasing at %d", i)
				}
			}
			if ticks[0].Pos < -epsilon || ticks[len(ticks)-1].Pos > 590+epsilon {
				t.Errorf("ticks outside range: %v .. %v", ticks[0].Pos, ticks[len(ticks)-1].Pos)
			}
		})
	}
}
