package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"symptom-predictor/internal/domain"
	"symptom-predictor/internal/ml"
)

type mockClassifier struct {
	label string
	proba []float64
	err   error
}

func (m *mockClassifier) Predict(_ []float64) (string, error) {
	return m.label, m.err
}

func (m *mockClassifier) PredictProba(_ []float64) ([]float64, error) {
	return m.proba, m.err
}

func TestPredictionService_NoModel(t *testing.T) {
	svc := NewPredictionService(nil)
	if svc.ModelLoaded() {
		t.Fatalf("expected model not loaded")
	}
	if _, err := svc.Predict(context.Background(), domain.Symptoms{}.Vector()); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestPredictionService_ConfidenceAndSuggestions(t *testing.T) {
	svc := NewPredictionService(&mockClassifier{label: "Flu", proba: []float64{0.1234, 0.8766}})

	got, err := svc.Predict(context.Background(), domain.Symptoms{Fever: 1}.Vector())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Disease != "Flu" {
		t.Fatalf("expected Flu, got %q", got.Disease)
	}
	if got.Confidence != 87.66 {
		t.Fatalf("expected 87.66, got %v", got.Confidence)
	}
	if !reflect.DeepEqual(got.Suggestions, SuggestionsFor("Flu")) {
		t.Fatalf("unexpected suggestions: %v", got.Suggestions)
	}
}

func TestPredictionService_UnknownLabelFallsBack(t *testing.T) {
	svc := NewPredictionService(&mockClassifier{label: "Covid", proba: []float64{1}})

	got, err := svc.Predict(context.Background(), nil)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != DefaultSuggestion {
		t.Fatalf("expected fallback suggestion, got %v", got.Suggestions)
	}
	if got.Confidence != 100 {
		t.Fatalf("expected 100, got %v", got.Confidence)
	}
}

func TestPredictionService_PropagatesModelError(t *testing.T) {
	svc := NewPredictionService(&mockClassifier{err: errors.New("boom")})
	if _, err := svc.Predict(context.Background(), nil); err == nil || err.Error() != "boom" {
		t.Fatalf("expected model error, got %v", err)
	}
}

func TestPredictionService_ForestOverAllBinaryVectors(t *testing.T) {
	x := [][]float64{
		{1, 0, 1, 1, 0, 1}, {0, 0, 1, 0, 0, 1}, {0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 0}, {0, 0, 0, 0, 0, 0}, {1, 1, 1, 1, 1, 1},
	}
	y := []string{"Flu", "Cold", "Migraine", "Food Poisoning", "Healthy", "Severe Infection"}
	forest, err := ml.Fit(domain.FeatureNames, x, y, ml.Params{NEstimators: 30, Seed: 42})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	classes := make(map[string]bool)
	for _, c := range forest.Classes {
		classes[c] = true
	}

	svc := NewPredictionService(forest)
	for mask := 0; mask < 64; mask++ {
		s := domain.Symptoms{
			Fever:    mask & 1,
			Headache: mask>>1&1,
			Cough:    mask>>2&1,
			Fatigue:  mask>>3&1,
			Vomiting: mask>>4&1,
			Cold:     mask>>5&1,
		}
		got, err := svc.Predict(context.Background(), s.Vector())
		if err != nil {
			t.Fatalf("mask %d: %v", mask, err)
		}
		if got.Confidence < 0 || got.Confidence > 100 {
			t.Fatalf("mask %d: confidence out of range: %v", mask, got.Confidence)
		}
		if !classes[got.Disease] {
			t.Fatalf("mask %d: unknown label %q", mask, got.Disease)
		}
	}
}

func TestConfidenceRounding(t *testing.T) {
	cases := map[float64][]float64{
		0:     nil,
		50:    {0.5, 0.5},
		33.33: {0.3333333, 0.3333333, 0.3333334},
		66.67: {0.6666666, 0.3333334},
	}
	for want, proba := range cases {
		if got := confidence(proba); got != want {
			t.Fatalf("confidence(%v) = %v, want %v", proba, got, want)
		}
	}
}
