package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultInferenceURL = "https://api-inference.huggingface.co"
	defaultHubURL       = "https://huggingface.co"
	defaultTimeout      = 120 * time.Second
)

// HFConfig configures the Hugging Face engine.
type HFConfig struct {
	// BaseURL is the Inference API endpoint.
	BaseURL string `mapstructure:"base_url" json:"base_url"`
	// HubURL is the model hub endpoint used to resolve model identifiers.
	HubURL string `mapstructure:"hub_url" json:"hub_url"`
	// Token is an optional API token sent as a Bearer credential.
	Token string `mapstructure:"token" json:"token"`
	// Timeout bounds every HTTP call to the engine.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// HF runs the tokenize/generate/decode pipeline against the Hugging Face
// Inference API. Tokenization and decoding happen server-side; Encode and
// Decode only package the batch for the remote call.
type HF struct {
	cfg    HFConfig
	client *http.Client
}

// NewHF creates an HF engine, filling unset config fields with defaults.
func NewHF(cfg HFConfig) *HF {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultInferenceURL
	}
	if cfg.HubURL == "" {
		cfg.HubURL = defaultHubURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &HF{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// resolveModel verifies that modelID exists on the hub. The hub lookup is the
// cheap equivalent of the local from_pretrained fetch: it fails fast on
// unknown identifiers and unreachable networks.
func (e *HF) resolveModel(ctx context.Context, modelID string) error {
	url := fmt.Sprintf("%s/api/models/%s", e.cfg.HubURL, modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	e.authorize(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("model hub unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("model %q not found on hub", modelID)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model hub returned status %d for %q", resp.StatusCode, modelID)
	}
	return nil
}

func (e *HF) authorize(req *http.Request) {
	if e.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.Token)
	}
}

// LoadTokenizer returns a tokenizer handle for modelID after resolving the
// identifier against the hub.
func (e *HF) LoadTokenizer(ctx context.Context, modelID string) (Tokenizer, error) {
	if err := e.resolveModel(ctx, modelID); err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	return &hfTokenizer{engine: e, modelID: modelID}, nil
}

// LoadModel returns a model handle for modelID after resolving the identifier
// against the hub.
func (e *HF) LoadModel(ctx context.Context, modelID string) (Model, error) {
	if err := e.resolveModel(ctx, modelID); err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return &hfModel{engine: e, modelID: modelID}, nil
}

type hfTokenizer struct {
	engine  *HF
	modelID string
}

func (t *hfTokenizer) Encode(ctx context.Context, texts []string) (EncodedBatch, error) {
	if len(texts) == 0 {
		return EncodedBatch{}, fmt.Errorf("empty input batch")
	}
	// The Inference API tokenizes server-side; the batch carries the raw
	// inputs until generation.
	return EncodedBatch{raw: texts}, nil
}

func (t *hfTokenizer) Decode(ctx context.Context, seqs TokenSequences, skipSpecial bool) ([]string, error) {
	// skipSpecial is already applied server-side; the API returns plain text.
	outputs, ok := seqs.raw.([]string)
	if !ok {
		return nil, fmt.Errorf("sequences were not produced by this engine")
	}
	return outputs, nil
}

type hfModel struct {
	engine  *HF
	modelID string
}

type hfGenerateRequest struct {
	Inputs     []string          `json:"inputs"`
	Parameters hfGenerateParams  `json:"parameters"`
	Options    hfGenerateOptions `json:"options"`
}

type hfGenerateParams struct {
	MaxNewTokens  int  `json:"max_new_tokens"`
	NumBeams      int  `json:"num_beams"`
	EarlyStopping bool `json:"early_stopping"`
}

type hfGenerateOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func (m *hfModel) Generate(ctx context.Context, batch EncodedBatch, opts GenerateOptions) (TokenSequences, error) {
	inputs, ok := batch.raw.([]string)
	if !ok {
		return TokenSequences{}, fmt.Errorf("batch was not produced by this engine")
	}

	body, err := json.Marshal(hfGenerateRequest{
		Inputs: inputs,
		Parameters: hfGenerateParams{
			MaxNewTokens:  opts.MaxNewTokens,
			NumBeams:      opts.NumBeams,
			EarlyStopping: opts.EarlyStopping,
		},
		Options: hfGenerateOptions{WaitForModel: true},
	})
	if err != nil {
		return TokenSequences{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", m.engine.cfg.BaseURL, m.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return TokenSequences{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	m.engine.authorize(req)

	resp, err := m.engine.client.Do(req)
	if err != nil {
		return TokenSequences{}, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return TokenSequences{}, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var generations []struct {
		TranslationText string `json:"translation_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generations); err != nil {
		return TokenSequences{}, fmt.Errorf("failed to decode response: %w", err)
	}

	outputs := make([]string, 0, len(generations))
	for _, g := range generations {
		outputs = append(outputs, g.TranslationText)
	}
	return TokenSequences{raw: outputs}, nil
}
