package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	ds "github.com/starfederation/datastar-go/datastar"

	"github.com/JonMunkholm/streamgraph/internal/chart"
	"github.com/JonMunkholm/streamgraph/internal/core"
	"github.com/JonMunkholm/streamgraph/internal/logging"
	"github.com/JonMunkholm/streamgraph/internal/render"
	"github.com/JonMunkholm/streamgraph/internal/web/templates"
)

const pageTitle = "Model usage streamgraph"

// currentDataset returns the session's dataset, nil when nothing was uploaded.
func (s *Server) currentDataset(r *http.Request) *core.Dataset {
	dataset, err := s.service.Dataset(sessionID(r))
	if err != nil {
		return nil
	}
	return dataset
}

func (s *Server) projectStreamgraph(r *http.Request) chart.Streamgraph {
	return chart.ProjectStreamgraph(s.currentDataset(r), s.service.Entities(), s.streamLayout)
}

// handleIndex renders the page with whatever the session last uploaded.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	dataset := s.currentDataset(r)

	signals := templates.Signals{Rows: dataset.Len()}
	if dataset != nil {
		signals.FileName = dataset.FileName
	}

	page := templates.Page(templates.PageData{
		Title:   pageTitle,
		Signals: signals,
		Chart:   render.Streamgraph(chart.ProjectStreamgraph(dataset, s.service.Entities(), s.streamLayout)),
		Tooltip: render.HiddenTooltip(),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleTooltip projects the hovered entity's bars.
//
// datastar clients send {entity, pageX, pageY} as signals and receive a
// patch of #tooltip; other clients pass the same names as query
// parameters and receive the geometry as JSON.
func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	var sig templates.Signals
	if isDatastar(r) {
		if err := ds.ReadSignals(r, &sig); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	} else {
		q := r.URL.Query()
		sig.Entity = q.Get("entity")
		sig.PageX, _ = strconv.ParseFloat(q.Get("pageX"), 64)
		sig.PageY, _ = strconv.ParseFloat(q.Get("pageY"), 64)
	}

	dataset, err := s.service.Dataset(sessionID(r))
	if err != nil {
		if isDatastar(r) {
			s.patchHiddenTooltip(w, r)
			return
		}
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	tip, err := chart.ProjectTooltip(dataset, s.service.Entities(), sig.Entity, s.tooltipLayout,
		chart.Pointer{PageX: sig.PageX, PageY: sig.PageY})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrUnknownEntity) {
			// A stale layer id hides the panel; the status area stays untouched.
			if isDatastar(r) {
				s.patchHiddenTooltip(w, r)
				return
			}
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}

	if !isDatastar(r) {
		writeJSON(w, tip)
		return
	}

	sse := ds.NewSSE(w, r)
	if err := sse.PatchElementTempl(render.Tooltip(tip)); err != nil {
		logging.FromContext(r.Context()).Warn("tooltip patch failed", "error", err)
	}
}

// handleTooltipHide fades the tooltip out when the pointer leaves a layer.
func (s *Server) handleTooltipHide(w http.ResponseWriter, r *http.Request) {
	s.patchHiddenTooltip(w, r)
}

func (s *Server) patchHiddenTooltip(w http.ResponseWriter, r *http.Request) {
	sse := ds.NewSSE(w, r)
	if err := sse.PatchElementTempl(render.HiddenTooltip()); err != nil {
		logging.FromContext(r.Context()).Warn("tooltip patch failed", "error", err)
	}
}

// handleChartSVG exports the current chart as a standalone SVG document.
// Without a dataset the export is an empty chart carrying only the legend.
func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.Streamgraph(s.projectStreamgraph(r)).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// handleChartPNG exports the current chart as a PNG image.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.PNG(&buf, s.projectStreamgraph(r)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// handleDataset returns the session's parsed records.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	dataset, err := s.service.Dataset(sessionID(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, dataset)
}

// handleGeometry returns the projected streamgraph as JSON.
func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.projectStreamgraph(r))
}

// handleEntities returns the configured series in stacking order.
func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Entities())
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string                 `json:"status"`
	Sessions int                    `json:"sessions"`
	Reads    core.ReadLimiterStatus `json:"reads"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:   "ok",
		Sessions: s.service.SessionCount(),
		Reads:    s.service.ReadStatus(),
	})
}
