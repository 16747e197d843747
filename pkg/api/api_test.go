package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mfbx9da4/meanwhile/pkg/config"
)

func testDoc() config.Document {
	return config.Document{
		StartDate:  "2025-03-10",
		DueDate:    "2025-12-15",
		TodayEmoji: "🤰",
		Milestones: []config.Milestone{
			{Date: "2025-06-18", Label: "Anatomy scan", Emoji: "🩺"},
		},
	}
}

// recordingCommitter captures commits for assertions.
type recordingCommitter struct {
	calls   int
	lastDoc config.Document
	lastMsg string
	url     string
	err     error
}

func (c *recordingCommitter) Commit(ctx context.Context, doc config.Document, message string) (string, error) {
	c.calls++
	c.lastDoc = doc
	c.lastMsg = message
	return c.url, c.err
}

func newTestServer(editor Editor, committer Committer) *Server {
	return NewServer(ServerConfig{
		PIN:       "1234",
		Source:    SourceFunc(func(context.Context) (config.Document, error) { return testDoc(), nil }),
		Editor:    editor,
		Committer: committer,
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	})
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func answerOnlyEditor(response string) Editor {
	return EditorFunc(func(_ context.Context, _ config.Document, _ string) (EditResult, error) {
		return EditResult{Response: response}, nil
	})
}

func TestChatWrongPIN(t *testing.T) {
	called := false
	editor := EditorFunc(func(_ context.Context, _ config.Document, _ string) (EditResult, error) {
		called = true
		return EditResult{}, nil
	})
	committer := &recordingCommitter{}
	s := newTestServer(editor, committer)

	w := postChat(t, s, `{"pin": "0000", "message": "add a milestone"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["error"] != "Invalid PIN" {
		t.Errorf("error = %q, want %q", body["error"], "Invalid PIN")
	}
	if called {
		t.Error("Editor should not run for a bad PIN")
	}
	if committer.calls != 0 {
		t.Error("Nothing should be committed for a bad PIN")
	}
}

func TestChatEmptyMessage(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)

	for _, body := range []string{
		`{"pin": "1234", "message": ""}`,
		`{"pin": "1234", "message": "   "}`,
		`{"pin": "1234"}`,
	} {
		w := postChat(t, s, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestChatMalformedJSON(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)
	w := postChat(t, s, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatAnswerWithoutEdit(t *testing.T) {
	committer := &recordingCommitter{}
	s := newTestServer(answerOnlyEditor("Your due date is December 15."), committer)

	w := postChat(t, s, `{"pin": "1234", "message": "when am I due?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.ConfigUpdated {
		t.Error("ConfigUpdated should be false without an edit")
	}
	if resp.CommitURL != "" {
		t.Errorf("CommitURL = %q, want empty", resp.CommitURL)
	}
	if resp.Response != "Your due date is December 15." {
		t.Errorf("Response = %q", resp.Response)
	}
	if committer.calls != 0 {
		t.Error("Nothing should be committed without an edit")
	}
}

func TestChatEditCommitted(t *testing.T) {
	editor := EditorFunc(func(_ context.Context, doc config.Document, _ string) (EditResult, error) {
		doc.Milestones = append(doc.Milestones, config.Milestone{
			Date: "2025-08-01", Label: "Hospital tour", Emoji: "🏥",
		})
		return EditResult{Response: "Added the hospital tour.", Updated: &doc}, nil
	})
	committer := &recordingCommitter{url: "https://github.com/o/r/commit/abc"}
	s := newTestServer(editor, committer)

	w := postChat(t, s, `{"pin": "1234", "message": "add a hospital tour on Aug 1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.ConfigUpdated {
		t.Error("ConfigUpdated should be true")
	}
	if resp.CommitURL != committer.url {
		t.Errorf("CommitURL = %q, want %q", resp.CommitURL, committer.url)
	}
	if committer.calls != 1 {
		t.Fatalf("committer calls = %d, want 1", committer.calls)
	}
	if len(committer.lastDoc.Milestones) != 2 {
		t.Errorf("committed %d milestones, want 2", len(committer.lastDoc.Milestones))
	}
	if committer.lastMsg != "add a hospital tour on Aug 1" {
		t.Errorf("commit message = %q", committer.lastMsg)
	}
}

// storingSource records write-through stores from accepted edits.
type storingSource struct {
	doc    config.Document
	stored []config.Document
}

func (s *storingSource) Load(context.Context) (config.Document, error) { return s.doc, nil }
func (s *storingSource) Store(doc config.Document)                     { s.stored = append(s.stored, doc) }

func TestChatEditStoresThrough(t *testing.T) {
	src := &storingSource{doc: testDoc()}
	editor := EditorFunc(func(_ context.Context, doc config.Document, _ string) (EditResult, error) {
		doc.TodayEmoji = "🌈"
		return EditResult{Response: "Changed the emoji.", Updated: &doc}, nil
	})
	s := NewServer(ServerConfig{
		PIN:       "1234",
		Source:    src,
		Editor:    editor,
		Committer: &recordingCommitter{url: "https://github.com/o/r/commit/abc"},
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	})

	w := postChat(t, s, `{"pin": "1234", "message": "use a rainbow"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(src.stored) != 1 {
		t.Fatalf("stores = %d, want 1", len(src.stored))
	}
	if src.stored[0].TodayEmoji != "🌈" {
		t.Errorf("stored TodayEmoji = %q, want the edit", src.stored[0].TodayEmoji)
	}
}

func TestChatInvalidEditRefused(t *testing.T) {
	editor := EditorFunc(func(_ context.Context, doc config.Document, _ string) (EditResult, error) {
		doc.Milestones[0].Date = "not-a-date"
		return EditResult{Response: "Done.", Updated: &doc}, nil
	})
	committer := &recordingCommitter{}
	s := newTestServer(editor, committer)

	w := postChat(t, s, `{"pin": "1234", "message": "break the config"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.ConfigUpdated {
		t.Error("Invalid edits must not report an update")
	}
	if !strings.Contains(resp.Response, "can't make that change") {
		t.Errorf("Response = %q, want a refusal", resp.Response)
	}
	if committer.calls != 0 {
		t.Error("Invalid edits must not be committed")
	}
}

func TestChatCommitterless(t *testing.T) {
	editor := EditorFunc(func(_ context.Context, doc config.Document, _ string) (EditResult, error) {
		doc.TodayEmoji = "🌟"
		return EditResult{Response: "Changed the marker.", Updated: &doc}, nil
	})
	s := newTestServer(editor, nil)

	w := postChat(t, s, `{"pin": "1234", "message": "use a star for today"}`)

	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.ConfigUpdated {
		t.Error("ConfigUpdated should be true without a committer")
	}
	if resp.CommitURL != "" {
		t.Errorf("CommitURL = %q, want empty without a committer", resp.CommitURL)
	}
}

func TestChatEditorError(t *testing.T) {
	editor := EditorFunc(func(context.Context, config.Document, string) (EditResult, error) {
		return EditResult{}, fmt.Errorf("model unavailable")
	})
	s := newTestServer(editor, nil)

	w := postChat(t, s, `{"pin": "1234", "message": "hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/layout?width=800&height=500&view=grid&today=2025-06-18", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Layout.Cells) != 280 {
		t.Errorf("len(Cells) = %d, want 280", len(resp.Layout.Cells))
	}
	if resp.DocHash == "" {
		t.Error("DocHash should be set")
	}
}

func TestHighlightEndpoint(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)
	router := s.Router()

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/highlight", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"pin": "9999", "days": [0]}`); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong PIN status = %d, want 401", w.Code)
	}
	if w := post(`{"pin": "1234", "days": [-1]}`); w.Code != http.StatusBadRequest {
		t.Errorf("negative index status = %d, want 400", w.Code)
	}

	if w := post(`{"pin": "1234", "days": [0, 1], "color": "#00ff00"}`); w.Code != http.StatusOK {
		t.Fatalf("set status = %d, want 200: %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/layout?width=800&height=500&view=grid&today=2025-06-18", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("layout status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, idx := range []int{0, 1} {
		if !resp.Layout.Cells[idx].Highlighted {
			t.Errorf("Cell %d should be highlighted", idx)
		}
	}
	if resp.Layout.Cells[2].Highlighted {
		t.Error("Cell 2 should not be highlighted")
	}
}

func TestLayoutEndpointBadParams(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)

	for _, target := range []string{
		"/api/layout?height=500",
		"/api/layout?width=abc&height=500",
		"/api/layout?width=800&height=500&view=spiral",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(answerOnlyEditor("hi"), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want propagated abc-123", got)
	}
}
