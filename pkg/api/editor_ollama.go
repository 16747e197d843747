package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mfbx9da4/meanwhile/pkg/config"
)

// OllamaEditor implements Editor against a local Ollama server. The
// model is asked to answer in JSON, with the edited document included
// only when the instruction actually changes it.
type OllamaEditor struct {
	URL     string // e.g. "http://localhost:11434"
	Model   string
	Timeout time.Duration

	httpClient *http.Client
}

// NewOllamaEditor builds an editor talking to an Ollama instance.
func NewOllamaEditor(url, model string) *OllamaEditor {
	return &OllamaEditor{
		URL:        url,
		Model:      model,
		Timeout:    60 * time.Second,
		httpClient: &http.Client{},
	}
}

const editorSystemPrompt = `You edit a pregnancy tracker configuration.
The user sends an instruction; the current configuration is provided as JSON.
Reply with a single JSON object:
  {"response": "<short conversational reply>", "document": <full updated config JSON>}
Omit "document" entirely when the instruction does not change the configuration.
Dates are YYYY-MM-DD. Colors are hex like #ff6b6b. Never invent milestones the
user did not ask for.`

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// editorReply is the JSON contract the model is prompted to follow.
type editorReply struct {
	Response string           `json:"response"`
	Document *config.Document `json:"document,omitempty"`
}

func (e *OllamaEditor) Edit(ctx context.Context, doc config.Document, instruction string) (EditResult, error) {
	current, err := doc.CanonicalJSON()
	if err != nil {
		return EditResult{}, fmt.Errorf("serialize config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	body, err := json.Marshal(ollamaRequest{
		Model:  e.Model,
		System: editorSystemPrompt,
		Prompt: fmt.Sprintf("Current configuration:\n%s\n\nInstruction: %s", current, instruction),
		Format: "json",
		Stream: false,
	})
	if err != nil {
		return EditResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return EditResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return EditResult{}, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EditResult{}, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return EditResult{}, fmt.Errorf("decode ollama response: %w", err)
	}

	var reply editorReply
	if err := json.Unmarshal([]byte(out.Response), &reply); err != nil {
		// The model ignored the JSON contract; treat its text as a
		// plain answer rather than failing the chat.
		return EditResult{Response: out.Response}, nil
	}

	return EditResult{Response: reply.Response, Updated: reply.Document}, nil
}
