package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Classifier is an external sentiment model. Implementations must be
// safe for concurrent use. The engine never trusts a classifier
// standalone: its predictions always pass through rule reconciliation.
type Classifier interface {
	// Name identifies the model for the model_version field.
	Name() string
	// Available reports whether the classifier can currently serve
	// predictions. Engines check this per call rather than failing over
	// on errors.
	Available(ctx context.Context) bool
	// Classify returns a sentiment label and a confidence in [0, 1].
	Classify(ctx context.Context, text string) (string, float64, error)
}

// HTTPClassifier calls an external model-serving endpoint. The health
// check runs once and is memoized; a service that comes up later
// requires a restart to be picked up.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client

	healthOnce sync.Once
	healthy    bool
	modelName  string
}

// NewHTTPClassifier creates a classifier against the given base URL,
// e.g. "http://ml-service:8500".
func NewHTTPClassifier(baseURL string) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		modelName: "ml",
	}
}

func (c *HTTPClassifier) Name() string {
	return c.modelName
}

func (c *HTTPClassifier) Available(ctx context.Context) bool {
	c.healthOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			return
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return
		}
		var health struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&health); err == nil && health.Model != "" {
			c.modelName = health.Model
		}
		c.healthy = true
	})
	return c.healthy
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", 0, fmt.Errorf("encoding classify request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("building classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("decoding classify response: %w", err)
	}
	return out.Label, out.Confidence, nil
}
