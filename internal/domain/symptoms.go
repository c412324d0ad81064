package domain

// FeatureNames es el orden posicional fijo del vector de síntomas.
var FeatureNames = []string{"fever", "headache", "cough", "fatigue", "vomiting", "cold"}

// LabelColumn es la columna del dataset con la enfermedad.
const LabelColumn = "Disease"

// Symptoms agrupa los seis indicadores binarios. No se valida el dominio 0/1.
type Symptoms struct {
	Fever    int `json:"fever"`
	Headache int `json:"headache"`
	Cough    int `json:"cough"`
	Fatigue  int `json:"fatigue"`
	Vomiting int `json:"vomiting"`
	Cold     int `json:"cold"`
}

// Vector devuelve los síntomas en el orden de FeatureNames.
func (s Symptoms) Vector() []float64 {
	return []float64{
		float64(s.Fever),
		float64(s.Headache),
		float64(s.Cough),
		float64(s.Fatigue),
		float64(s.Vomiting),
		float64(s.Cold),
	}
}

// SymptomRecord es una fila del dataset de entrenamiento.
type SymptomRecord struct {
	Features []float64 `json:"features"`
	Disease  string    `json:"disease"`
}
