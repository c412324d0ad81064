package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"symptom-predictor/internal/domain"
	"symptom-predictor/internal/service"
)

// APIHandler atiende el endpoint JSON. No toca el estado de sesión.
type APIHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
}

// NewAPIHandler crea una instancia de APIHandler.
func NewAPIHandler(logger *zap.Logger, predictions *service.PredictionService) *APIHandler {
	return &APIHandler{
		logger:      logger,
		predictions: predictions,
	}
}

// Help maneja GET /api. Responde siempre, haya o no modelo cargado.
func (h *APIHandler) Help(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Health Prediction API",
		"usage":   "POST to this endpoint with symptoms JSON",
		"example": gin.H{"fever": 1, "headache": 0, "cough": 1, "fatigue": 1, "vomiting": 0, "cold": 0},
	})
}

// Predict maneja POST /api.
func (h *APIHandler) Predict(c *gin.Context) {
	if !h.predictions.ModelLoaded() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Model not loaded"})
		return
	}

	vector, err := decodeJSONSymptoms(c.Request.Body)
	if err != nil {
		h.logger.Warn("invalid api predict request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictions.Predict(c.Request.Context(), vector)
	if err != nil {
		h.logger.Error("api prediction failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predicted_disease": prediction.Disease,
		"confidence":        fmt.Sprintf("%.2f%%", prediction.Confidence),
		"suggestions":       prediction.Suggestions,
	})
}

// Health maneja GET /healthz.
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"model_loaded": h.predictions.ModelLoaded(),
	})
}

// decodeJSONSymptoms arma el vector en orden fijo. Los campos ausentes valen 0 y
// los valores numéricos pasan sin control de rango.
func decodeJSONSymptoms(body io.Reader) ([]float64, error) {
	if body == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("request body must contain a single JSON object")
	}

	vector := make([]float64, len(domain.FeatureNames))
	for i, name := range domain.FeatureNames {
		val, ok := payload[name]
		if !ok {
			continue
		}
		v, err := numericValue(val)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		vector[i] = v
	}
	return vector, nil
}

func numericValue(val any) (float64, error) {
	switch v := val.(type) {
	case json.Number:
		return v.Float64()
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported value %v", val)
	}
}
