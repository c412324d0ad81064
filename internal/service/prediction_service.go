package service

import (
	"context"
	"errors"
	"math"

	"symptom-predictor/internal/domain"
)

var ErrModelNotLoaded = errors.New("model not loaded")

// Classifier es el contrato mínimo que necesita el flujo de predicción.
type Classifier interface {
	Predict(x []float64) (string, error)
	PredictProba(x []float64) ([]float64, error)
}

// PredictionService ejecuta el flujo vector -> etiqueta, confianza y recomendaciones.
// El modelo se fija al construir el servicio y nunca se reemplaza.
type PredictionService struct {
	model Classifier
}

func NewPredictionService(model Classifier) *PredictionService {
	return &PredictionService{model: model}
}

func (s *PredictionService) ModelLoaded() bool {
	return s != nil && s.model != nil
}

func (s *PredictionService) Predict(_ context.Context, vector []float64) (domain.Prediction, error) {
	if !s.ModelLoaded() {
		return domain.Prediction{}, ErrModelNotLoaded
	}

	disease, err := s.model.Predict(vector)
	if err != nil {
		return domain.Prediction{}, err
	}
	proba, err := s.model.PredictProba(vector)
	if err != nil {
		return domain.Prediction{}, err
	}

	return domain.Prediction{
		Disease:     disease,
		Confidence:  confidence(proba),
		Suggestions: SuggestionsFor(disease),
	}, nil
}

// confidence es la probabilidad máxima en porcentaje, redondeada a 2 decimales.
func confidence(proba []float64) float64 {
	if len(proba) == 0 {
		return 0
	}
	best := proba[0]
	for _, p := range proba[1:] {
		if p > best {
			best = p
		}
	}
	return math.Round(best*100*100) / 100
}
