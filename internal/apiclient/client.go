package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"symptom-predictor/internal/domain"
)

// DefaultURL es la dirección local donde escucha el servicio por defecto.
const DefaultURL = "http://127.0.0.1:5000/api"

// SampleSymptoms es el payload fijo que usa la verificación.
var SampleSymptoms = domain.Symptoms{Fever: 1, Headache: 0, Cough: 1, Fatigue: 1, Vomiting: 0, Cold: 1}

// PredictResponse es la respuesta exitosa de POST /api.
type PredictResponse struct {
	PredictedDisease string   `json:"predicted_disease"`
	Confidence       string   `json:"confidence"`
	Suggestions      []string `json:"suggestions"`
}

// Result conserva el status y el cuerpo crudo para informar al operador.
type Result struct {
	StatusCode int
	Body       string
	Prediction *PredictResponse
}

// Client llama al endpoint JSON del servicio. No reintenta.
type Client struct {
	url    string
	client *resty.Client
}

func New(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

// Predict envía los síntomas como JSON. Solo un error de transporte devuelve err.
func (c *Client) Predict(ctx context.Context, symptoms domain.Symptoms) (Result, error) {
	var out PredictResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(symptoms).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", c.url, err)
	}

	result := Result{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}
	if resp.IsSuccess() {
		result.Prediction = &out
	}
	return result, nil
}
