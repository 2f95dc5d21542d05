package core

import (
	"reflect"
	"testing"
)

func TestParseEntitySet(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    EntitySet
		wantErr bool
	}{
		{
			name:  "ordered pairs",
			specs: []string{"A=#FF0000", " B = #00ff00 "},
			want:  EntitySet{{Name: "A", Color: "#ff0000"}, {Name: "B", Color: "#00ff00"}},
		},
		{name: "empty", specs: nil, wantErr: true},
		{name: "missing color", specs: []string{"A"}, wantErr: true},
		{name: "missing name", specs: []string{"=#ff0000"}, wantErr: true},
		{name: "short hex", specs: []string{"A=#fff"}, wantErr: true},
		{name: "no hash", specs: []string{"A=ff0000"}, wantErr: true},
		{name: "duplicate", specs: []string{"A=#ff0000", "A=#00ff00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntitySet(tt.specs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntitySet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseEntitySet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultEntitySet(t *testing.T) {
	set := DefaultEntitySet()

	wantOrder := []string{"LLaMA-3.1", "Claude", "PaLM-2", "Gemini", "GPT-4"}
	if !reflect.DeepEqual(set.Names(), wantOrder) {
		t.Errorf("Names() = %v, want %v", set.Names(), wantOrder)
	}

	wantColors := map[string]string{
		"GPT-4":     "#e41a1c",
		"Gemini":    "#377eb8",
		"PaLM-2":    "#4daf4a",
		"Claude":    "#984ea3",
		"LLaMA-3.1": "#ff7f00",
	}
	for name, color := range wantColors {
		if got := set.Color(name); got != color {
			t.Errorf("Color(%q) = %q, want %q", name, got, color)
		}
	}
}

func TestEntitySet_Lookup(t *testing.T) {
	set := DefaultEntitySet()

	if _, ok := set.Lookup("gpt-4"); ok {
		t.Error("Lookup should be case-sensitive")
	}
	if e, ok := set.Lookup("Claude"); !ok || e.Color != "#984ea3" {
		t.Errorf("Lookup(Claude) = %v, %v", e, ok)
	}
	if got := set.Color("Mistral"); got != "" {
		t.Errorf("Color(unknown) = %q, want empty", got)
	}
}
