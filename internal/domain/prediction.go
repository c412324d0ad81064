package domain

import "time"

type Prediction struct {
	Disease     string   `json:"predicted_disease"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// HistoryEntry es un registro del historial de predicciones de una sesión.
type HistoryEntry struct {
	Disease    string    `json:"disease"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
