package api

import (
	"encoding/json"
	"net/http"

	"github.com/mfbx9da4/meanwhile/pkg/highlight"
)

type highlightRequest struct {
	PIN   string `json:"pin"`
	Days  []int  `json:"days"`
	Color string `json:"color,omitempty"`
}

// handleHighlight replaces the server's highlight selection. An empty
// days list clears it. Layout responses pick the new selection up on
// the next request.
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.checkPIN(req.PIN) {
		writeError(w, http.StatusUnauthorized, "Invalid PIN")
		return
	}
	for _, d := range req.Days {
		if d < 0 {
			writeError(w, http.StatusBadRequest, "day indices must be non-negative")
			return
		}
	}

	sel := highlight.Selection{Days: req.Days, Color: req.Color}
	s.highlight.Set(sel)
	writeJSON(w, http.StatusOK, sel)
}
