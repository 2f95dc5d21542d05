// Package templates holds the page shell and status fragments. Components
// are written in page.templ and compiled with `templ generate`.
package templates

import (
	"encoding/json"
	"fmt"

	"github.com/a-h/templ"
)

// StatusID is the element error and status fragments replace.
const StatusID = "upload-status"

// DatastarScript is the client runtime that applies SSE patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// UploadPath is where the file picker posts.
const UploadPath = "/api/upload"

// Signals is the client-side state datastar sends with every action.
type Signals struct {
	Entity   string  `json:"entity"`
	PageX    float64 `json:"pageX"`
	PageY    float64 `json:"pageY"`
	Rows     int     `json:"rows"`
	FileName string  `json:"fileName"`
}

// PageData is everything the index page renders.
type PageData struct {
	Title   string
	Signals Signals
	Chart   templ.Component
	Tooltip templ.Component
}

const uploadAction = "@post('" + UploadPath + "', {contentType: 'form'})"

// signalsJSON seeds the page's datastar signals.
func signalsJSON(sig Signals) (string, error) {
	b, err := json.Marshal(sig)
	if err != nil {
		return "", fmt.Errorf("encode signals: %w", err)
	}
	return string(b), nil
}
