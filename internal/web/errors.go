package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (datastar, JSON, or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ds "github.com/starfederation/datastar-go/datastar"

	"github.com/JonMunkholm/streamgraph/internal/core"
	"github.com/JonMunkholm/streamgraph/internal/logging"
	"github.com/JonMunkholm/streamgraph/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (datastar, JSON, or HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if isDatastar(r) {
		renderErrorPatch(w, r, userMsg)
	} else if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorHTML(w, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML writes a plain text error response.
func respondErrorHTML(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
}

// renderErrorPatch swaps the error alert into the status area.
//
// datastar drops non-2xx responses without applying them, so the patch is
// always sent on a 200 event stream; the real status is in the log line.
func renderErrorPatch(w http.ResponseWriter, r *http.Request, msg core.UserMessage) {
	sse := ds.NewSSE(w, r)
	if err := sse.PatchElementTempl(templates.ErrorAlert(msg.Message, msg.Action, msg.Code)); err != nil {
		logging.FromContext(r.Context()).Warn("error patch failed", "error", err)
	}
}

// isDatastar reports whether the request came from a datastar action.
func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(accept, "application/json") {
		return true
	}

	if strings.Contains(contentType, "application/json") {
		return true
	}

	// API routes default to JSON
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}

	return false
}
