package http

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"symptom-predictor/internal/domain"
	"symptom-predictor/internal/ml"
	"symptom-predictor/internal/service"
)

func trainTestForest(t *testing.T) *ml.Forest {
	t.Helper()
	base := []struct {
		s     domain.Symptoms
		label string
	}{
		{domain.Symptoms{Fever: 1, Cough: 1, Fatigue: 1, Cold: 1}, "Flu"},
		{domain.Symptoms{Cough: 1, Cold: 1}, "Cold"},
		{domain.Symptoms{Headache: 1}, "Migraine"},
		{domain.Symptoms{Fatigue: 1, Vomiting: 1}, "Food Poisoning"},
		{domain.Symptoms{}, "Healthy"},
		{domain.Symptoms{Fever: 1, Headache: 1, Cough: 1, Fatigue: 1, Vomiting: 1, Cold: 1}, "Severe Infection"},
	}
	var x [][]float64
	var y []string
	for i := 0; i < 4; i++ {
		for _, b := range base {
			x = append(x, b.s.Vector())
			y = append(y, b.label)
		}
	}
	forest, err := ml.Fit(domain.FeatureNames, x, y, ml.Params{NEstimators: 50, Seed: 42})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	return forest
}

type testServer struct {
	router   *gin.Engine
	history  service.HistoryStore
	sessions *service.SessionService
}

func setupRouter(t *testing.T, withModel bool) testServer {
	t.Helper()
	if withModel {
		return newTestServer(t, trainTestForest(t))
	}
	return newTestServer(t, nil)
}

func newTestServer(t *testing.T, classifier service.Classifier) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	predictions := service.NewPredictionService(classifier)
	history := service.NewMemoryHistoryStore(time.Hour)
	sessions := service.NewSessionService("secret", time.Hour)

	pageH := NewPageHandler(logger, predictions, history, sessions)
	apiH := NewAPIHandler(logger, predictions)
	return testServer{
		router:   NewRouter(logger, []string{"*"}, sessions, pageH, apiH),
		history:  history,
		sessions: sessions,
	}
}

// trainNarrowForest entrena un modelo con menos atributos que el formulario.
func trainNarrowForest(t *testing.T) *ml.Forest {
	t.Helper()
	names := domain.FeatureNames[:5]
	x := [][]float64{{1, 0, 1, 1, 0}, {0, 1, 0, 0, 0}, {0, 0, 0, 0, 0}}
	y := []string{"Flu", "Migraine", "Healthy"}
	forest, err := ml.Fit(names, x, y, ml.Params{NEstimators: 5, Seed: 42})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	return forest
}
