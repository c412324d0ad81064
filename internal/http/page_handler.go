package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"symptom-predictor/internal/domain"
	"symptom-predictor/internal/service"
)

const modelNotLoadedPage = "Model not loaded. Please train the model first."

// PageHandler atiende el formulario HTML y guarda el historial de la sesión.
type PageHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
	history     service.HistoryStore
	sessions    *service.SessionService
}

// NewPageHandler crea una instancia de PageHandler con las dependencias necesarias.
func NewPageHandler(
	logger *zap.Logger,
	predictions *service.PredictionService,
	history service.HistoryStore,
	sessions *service.SessionService,
) *PageHandler {
	return &PageHandler{
		logger:      logger,
		predictions: predictions,
		history:     history,
		sessions:    sessions,
	}
}

// Home maneja GET /.
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.view(c, gin.H{}))
}

// Predict maneja POST /predict.
func (h *PageHandler) Predict(c *gin.Context) {
	if !h.predictions.ModelLoaded() {
		c.HTML(http.StatusOK, "index.html", h.view(c, gin.H{"error": modelNotLoadedPage}))
		return
	}

	symptoms, err := parseFormSymptoms(c)
	if err != nil {
		h.logger.Warn("invalid predict form", zap.Error(err))
		c.HTML(http.StatusOK, "index.html", h.view(c, gin.H{"error": "An error occurred: " + err.Error()}))
		return
	}

	prediction, err := h.predictions.Predict(c.Request.Context(), symptoms.Vector())
	if err != nil {
		h.logger.Error("prediction failed", zap.Error(err))
		c.HTML(http.StatusOK, "index.html", h.view(c, gin.H{"error": "An error occurred: " + err.Error()}))
		return
	}

	h.record(c, prediction)

	c.HTML(http.StatusOK, "index.html", h.view(c, gin.H{
		"prediction":  prediction.Disease,
		"confidence":  prediction.Confidence,
		"suggestions": prediction.Suggestions,
	}))
}

// record agrega la predicción al historial; un fallo del store no invalida la respuesta.
func (h *PageHandler) record(c *gin.Context, prediction domain.Prediction) {
	if h.history == nil || h.sessions == nil {
		return
	}
	sessionID, err := ensureSession(c, h.sessions)
	if err != nil {
		h.logger.Warn("session issue failed", zap.Error(err))
		return
	}
	entry := domain.HistoryEntry{
		Disease:    prediction.Disease,
		Confidence: prediction.Confidence,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.history.Append(c.Request.Context(), sessionID, entry); err != nil {
		h.logger.Warn("history append failed", zap.Error(err), zap.String("session_id", sessionID))
	}
}

// view completa los datos comunes de la plantilla.
func (h *PageHandler) view(c *gin.Context, data gin.H) gin.H {
	data["fields"] = domain.FeatureNames
	if h.history == nil {
		return data
	}
	sessionID, ok := GetSessionID(c)
	if !ok {
		return data
	}
	entries, err := h.history.List(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Warn("history list failed", zap.Error(err), zap.String("session_id", sessionID))
		return data
	}
	if len(entries) > 0 {
		data["history"] = entries
	}
	return data
}

// parseFormSymptoms usa 0 para campos ausentes; un valor no entero es un error.
func parseFormSymptoms(c *gin.Context) (domain.Symptoms, error) {
	var s domain.Symptoms
	targets := []*int{&s.Fever, &s.Headache, &s.Cough, &s.Fatigue, &s.Vomiting, &s.Cold}
	for i, name := range domain.FeatureNames {
		raw, ok := c.GetPostForm(name)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return domain.Symptoms{}, fmt.Errorf("invalid value for %s: %q", name, raw)
		}
		*targets[i] = v
	}
	return s, nil
}
