package api

import (
	"net/http"
	"strconv"

	"github.com/mfbx9da4/meanwhile/pkg/layout"
	"github.com/mfbx9da4/meanwhile/pkg/pipeline"
	"github.com/mfbx9da4/meanwhile/pkg/viewport"
)

type layoutResponse struct {
	Layout   layout.Layout `json:"layout"`
	DocHash  string        `json:"docHash"`
	CacheHit bool          `json:"cacheHit"`
}

// handleLayout computes a layout for the current document. Viewport and
// view come from query parameters; everything else uses pipeline
// defaults.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width, err := parseDimension(q.Get("width"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid width")
		return
	}
	height, err := parseDimension(q.Get("height"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid height")
		return
	}

	view := q.Get("view")
	if view != "" {
		if err := pipeline.ValidateView(view); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()
	doc, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("load document", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load config")
		return
	}

	result, err := s.runner.Execute(ctx, pipeline.Options{
		Document:  doc,
		Today:     q.Get("today"),
		Viewport:  viewport.Viewport{Width: width, Height: height},
		View:      view,
		Refresh:   q.Get("refresh") == "true",
		Highlight: s.highlight.Get(),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:   result.Layout,
		DocHash:  result.DocHash,
		CacheHit: result.CacheInfo.LayoutHit,
	})
}

func parseDimension(s string) (float64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
