package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mfbx9da4/meanwhile/pkg/config"
)

// Editor turns a chat instruction into a document edit. Implementations
// are free to call out to whatever understands natural language; the
// server only sees the outcome.
type Editor interface {
	// Edit applies instruction to doc. A nil Updated means the editor
	// answered without changing anything (or refused).
	Edit(ctx context.Context, doc config.Document, instruction string) (EditResult, error)
}

// EditResult is the outcome of one chat instruction.
type EditResult struct {
	// Response is the conversational reply shown to the user.
	Response string

	// Updated is the edited document, or nil when nothing changed.
	Updated *config.Document
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(ctx context.Context, doc config.Document, instruction string) (EditResult, error)

func (f EditorFunc) Edit(ctx context.Context, doc config.Document, instruction string) (EditResult, error) {
	return f(ctx, doc, instruction)
}

type chatRequest struct {
	PIN     string `json:"pin"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response      string `json:"response"`
	ConfigUpdated bool   `json:"configUpdated"`
	CommitURL     string `json:"commitUrl,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !s.checkPIN(req.PIN) {
		writeError(w, http.StatusUnauthorized, "Invalid PIN")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx := r.Context()
	doc, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("load document", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load config")
		return
	}

	result, err := s.editor.Edit(ctx, doc, req.Message)
	if err != nil {
		s.logger.Error("edit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "edit failed")
		return
	}

	resp := chatResponse{Response: result.Response}

	if result.Updated != nil {
		// Reject edits that break the document rather than persisting
		// a config the layout pipeline cannot consume.
		if err := result.Updated.Validate(); err != nil {
			resp.Response = "I can't make that change: " + err.Error()
			writeJSON(w, http.StatusOK, resp)
			return
		}

		if s.committer != nil {
			commitURL, err := s.committer.Commit(ctx, *result.Updated, req.Message)
			if err != nil {
				s.logger.Error("commit failed", "error", err)
				writeError(w, http.StatusInternalServerError, "could not save config")
				return
			}
			resp.CommitURL = commitURL
		}
		if st, ok := s.source.(Storer); ok {
			st.Store(*result.Updated)
		}
		resp.ConfigUpdated = true
	}

	writeJSON(w, http.StatusOK, resp)
}
