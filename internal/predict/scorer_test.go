package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/model"
)

func scorerConfig(url string) *config.PredictionConfig {
	return &config.PredictionConfig{
		Enabled:  true,
		ScoreURL: url,
		Timeout:  5 * time.Second,
	}
}

func TestHTTPScorerScoresRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Rows, 2)
		assert.Equal(t, "Tools_Good", req.Rows[0].CategoryCondition)

		json.NewEncoder(w).Encode(scoreResponse{Probabilities: []float64{0.8, 0.3}})
	}))
	defer server.Close()

	scorer := NewHTTPScorer(scorerConfig(server.URL))
	rows := BuildFeatures([]model.Resource{
		{Category: "Tools", Condition: "Good", Rating: 4},
		{Category: "Books", Condition: "Fair", Rating: 2},
	})

	probabilities, err := scorer.Score(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.8, 0.3}, probabilities)
}

func TestHTTPScorerUnavailable(t *testing.T) {
	t.Run("no url configured", func(t *testing.T) {
		scorer := NewHTTPScorer(&config.PredictionConfig{Timeout: time.Second})
		_, err := scorer.Score(context.Background(), nil)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("service down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Connection refused from here on.

		scorer := NewHTTPScorer(scorerConfig(server.URL))
		_, err := scorer.Score(context.Background(), []FeatureRow{{}})
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		scorer := NewHTTPScorer(scorerConfig(server.URL))
		_, err := scorer.Score(context.Background(), []FeatureRow{{}})
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestHTTPScorerRejectsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scoreResponse{Probabilities: []float64{0.5}})
	}))
	defer server.Close()

	scorer := NewHTTPScorer(scorerConfig(server.URL))
	_, err := scorer.Score(context.Background(), []FeatureRow{{}, {}})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelUnavailable)
}

type stubScorer struct {
	probabilities []float64
	err           error
}

func (s *stubScorer) Score(context.Context, []FeatureRow) ([]float64, error) {
	return s.probabilities, s.err
}

func TestTopPredicted(t *testing.T) {
	resources := []model.Resource{
		{Title: "Drill", Category: "Tools", Condition: "Good"},
		{Title: "Tent", Category: "Outdoor", Condition: "Fair"},
		{Title: "Piano", Category: "Musical Instruments", Condition: "Excellent"},
	}
	scorer := &stubScorer{probabilities: []float64{0.2, 0.9, 0.5}}

	predictions, err := TopPredicted(context.Background(), scorer, resources, 2)
	require.NoError(t, err)

	require.Len(t, predictions, 2)
	assert.Equal(t, Prediction{Title: "Tent", RequestProbability: 0.9}, predictions[0])
	assert.Equal(t, Prediction{Title: "Piano", RequestProbability: 0.5}, predictions[1])
}

func TestTopPredictedEmptyResources(t *testing.T) {
	predictions, err := TopPredicted(context.Background(), &stubScorer{}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, predictions)
}
