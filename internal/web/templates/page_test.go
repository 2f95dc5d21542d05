package templates

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return buf.String()
}

func TestPage(t *testing.T) {
	chart := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<svg id="chart"></svg>`)
		return err
	})

	tests := []struct {
		name    string
		data    PageData
		want    []string
		notWant []string
	}{
		{
			name: "empty page",
			data: PageData{Title: "Usage"},
			want: []string{
				"<!doctype html>",
				"<title>Usage</title>",
				`src="` + DatastarScript + `"`,
				`id="upload-status"`,
				`<div class="chart-wrap"></div>`,
				`data-on:change="@post(&#39;/api/upload&#39;, {contentType: &#39;form&#39;})"`,
			},
			notWant: []string{`id="chart"`},
		},
		{
			name: "chart and signals",
			data: PageData{
				Title:   "Usage",
				Signals: Signals{Rows: 2, FileName: "usage.csv"},
				Chart:   chart,
			},
			want: []string{
				`<div class="chart-wrap"><svg id="chart"></svg></div>`,
				`&#34;rows&#34;:2`,
				`&#34;fileName&#34;:&#34;usage.csv&#34;`,
			},
		},
		{
			name: "title escaped",
			data: PageData{Title: "<script>"},
			want: []string{"<title>&lt;script&gt;</title>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, Page(tt.data))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("page missing %q", want)
				}
			}
			for _, unwanted := range tt.notWant {
				if strings.Contains(out, unwanted) {
					t.Errorf("page should not contain %q", unwanted)
				}
			}
		})
	}
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("Bad <file>", "Try again", "FILE004"))

	want := `<div id="upload-status" class="alert error" role="alert"><strong>Bad &lt;file&gt;</strong> <span>Try again</span> <code>FILE004</code></div>`
	if out != want {
		t.Errorf("ErrorAlert =\n%s\nwant\n%s", out, want)
	}
}

func TestClearStatus(t *testing.T) {
	if out := renderString(t, ClearStatus()); out != `<div id="upload-status"></div>` {
		t.Errorf("ClearStatus = %s", out)
	}
}
