package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ds "github.com/starfederation/datastar-go/datastar"

	"github.com/JonMunkholm/streamgraph/internal/chart"
	"github.com/JonMunkholm/streamgraph/internal/core"
	"github.com/JonMunkholm/streamgraph/internal/logging"
	"github.com/JonMunkholm/streamgraph/internal/render"
	"github.com/JonMunkholm/streamgraph/internal/web/templates"
)

// UploadResponse is the JSON summary returned to non-datastar clients.
type UploadResponse struct {
	ID       string           `json:"id"`
	FileName string           `json:"fileName"`
	Rows     int              `json:"rows"`
	Stats    core.IngestStats `json:"stats"`
}

// handleUpload reads a CSV file and makes it the session's dataset.
// The file streams straight into the ingestor; nothing is buffered beyond
// what the multipart parser keeps.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.respondError(w, r, fmt.Errorf("parse upload form: %w", err), status)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := core.ContextWithOrigin(r.Context(), core.Origin{IP: r.RemoteAddr, UserAgent: r.UserAgent()})
	dataset, err := s.service.Upload(ctx, sessionID(r), header.Filename, file)
	if err != nil {
		if errors.Is(err, core.ErrStaleUpload) && isDatastar(r) {
			// The newer upload owns the page; leave it alone.
			logging.FromContext(r.Context()).Info("stale upload response dropped", "file", header.Filename)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.respondError(w, r, err, uploadStatus(err))
		return
	}

	if !isDatastar(r) {
		writeJSON(w, UploadResponse{
			ID:       dataset.ID,
			FileName: dataset.FileName,
			Rows:     dataset.Len(),
			Stats:    dataset.Stats,
		})
		return
	}

	g := chart.ProjectStreamgraph(dataset, s.service.Entities(), s.streamLayout)

	sse := ds.NewSSE(w, r)
	patches := []func() error{
		func() error { return sse.PatchElementTempl(render.Streamgraph(g)) },
		func() error { return sse.PatchElementTempl(render.HiddenTooltip()) },
		func() error { return sse.PatchElementTempl(templates.ClearStatus()) },
		func() error {
			return sse.MarshalAndPatchSignals(map[string]any{
				"rows":     dataset.Len(),
				"fileName": dataset.FileName,
			})
		},
	}
	for _, patch := range patches {
		if err := patch(); err != nil {
			logging.FromContext(r.Context()).Warn("upload patch failed", "error", err)
			return
		}
	}
}

// uploadStatus picks the HTTP status for a failed upload.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrStaleUpload):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyReads):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrInvalidCSV):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
