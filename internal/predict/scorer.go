package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/model"
)

// ErrModelUnavailable means the prediction collaborator is missing or
// unreachable. Callers surface it as a user-visible message, never a crash.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// Scorer returns one request probability per feature row.
type Scorer interface {
	Score(ctx context.Context, rows []FeatureRow) ([]float64, error)
}

// HTTPScorer calls an external scoring service hosting the trained model.
type HTTPScorer struct {
	cfg    *config.PredictionConfig
	client *http.Client
}

// NewHTTPScorer creates a scorer client from the prediction configuration.
func NewHTTPScorer(cfg *config.PredictionConfig) *HTTPScorer {
	return &HTTPScorer{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type scoreRequest struct {
	Rows []FeatureRow `json:"rows"`
}

type scoreResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// Score posts the feature rows and returns the predicted probabilities.
// Transport failures and non-200 responses map to ErrModelUnavailable.
func (s *HTTPScorer) Score(ctx context.Context, rows []FeatureRow) ([]float64, error) {
	if s.cfg.ScoreURL == "" {
		return nil, ErrModelUnavailable
	}

	jsonBody, err := json.Marshal(scoreRequest{Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ScoreURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range s.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: scoring service returned status %d", ErrModelUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read score response: %w", err)
	}

	var scoreResp scoreResponse
	if err := json.Unmarshal(body, &scoreResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score response: %w", err)
	}

	if len(scoreResp.Probabilities) != len(rows) {
		return nil, fmt.Errorf("scoring service returned %d probabilities for %d rows", len(scoreResp.Probabilities), len(rows))
	}
	return scoreResp.Probabilities, nil
}

// Prediction is one ranked entry of the popularity view.
type Prediction struct {
	Title              string  `json:"title"`
	RequestProbability float64 `json:"request_probability"`
}

// TopPredicted scores every resource and returns the n most likely to be
// requested, highest probability first.
func TopPredicted(ctx context.Context, scorer Scorer, resources []model.Resource, n int) ([]Prediction, error) {
	if len(resources) == 0 {
		return []Prediction{}, nil
	}

	probabilities, err := scorer.Score(ctx, BuildFeatures(resources))
	if err != nil {
		return nil, err
	}

	predictions := make([]Prediction, len(resources))
	for i, r := range resources {
		predictions[i] = Prediction{Title: r.Title, RequestProbability: probabilities[i]}
	}
	sort.SliceStable(predictions, func(a, b int) bool {
		return predictions[a].RequestProbability > predictions[b].RequestProbability
	})

	if n > 0 && len(predictions) > n {
		predictions = predictions[:n]
	}
	return predictions, nil
}
