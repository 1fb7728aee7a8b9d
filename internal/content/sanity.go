package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
)

const maxErrorBody = 4 << 10

// SanityClient creates documents through the Sanity mutation API
type SanityClient struct {
	cfg        *config.ContentConfig
	baseURL    string
	httpClient *http.Client
}

// NewSanityClient creates a new Sanity client
func NewSanityClient(cfg *config.ContentConfig) *SanityClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	return &SanityClient{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the backend name
func (c *SanityClient) Name() string {
	return config.BackendSanity
}

type mutateRequest struct {
	Mutations []map[string]map[string]any `json:"mutations"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string         `json:"id"`
		Operation string         `json:"operation"`
		Document  map[string]any `json:"document"`
	} `json:"results"`
}

// Create creates a single document and returns it with its assigned ID
func (c *SanityClient) Create(ctx context.Context, doc Document) (rec *Record, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryCall(c.Name(), time.Since(start), err)
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		body[k] = v
	}
	body["_type"] = doc.Type

	payload, err := json.Marshal(mutateRequest{
		Mutations: []map[string]map[string]any{{"create": body}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mutateURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send mutation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("sanity API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode mutation response: %w", err)
	}
	if len(out.Results) == 0 || out.Results[0].ID == "" {
		return nil, fmt.Errorf("sanity API returned no document id (transaction %s)", out.TransactionID)
	}

	result := out.Results[0]
	rec = &Record{
		ID:        result.ID,
		Type:      doc.Type,
		CreatedAt: time.Now().UTC(),
		Fields:    doc.Fields,
	}
	if result.Document != nil {
		if ts, ok := result.Document["_createdAt"].(string); ok {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.CreatedAt = t
			}
		}
	}

	log.Printf("[CONTENT] Created %s document id=%s transaction=%s", doc.Type, rec.ID, out.TransactionID)
	return rec, nil
}

func (c *SanityClient) mutateURL() string {
	version := strings.TrimPrefix(c.cfg.APIVersion, "v")
	q := url.Values{}
	q.Set("returnIds", "true")
	q.Set("returnDocuments", "true")
	q.Set("visibility", "sync")
	return fmt.Sprintf("%s/v%s/data/mutate/%s?%s", c.baseURL, version, url.PathEscape(c.cfg.Dataset), q.Encode())
}
