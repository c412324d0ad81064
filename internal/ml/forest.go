package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	ErrNotFitted       = errors.New("model not fitted")
	ErrFeatureMismatch = errors.New("feature count mismatch")
	ErrEmptyDataset    = errors.New("empty dataset")
)

// Params controla el entrenamiento del bosque.
type Params struct {
	NEstimators int
	Seed        int64
	// MaxFeatures es la cantidad de atributos evaluados por división; 0 usa floor(sqrt(n)).
	MaxFeatures int
}

// Forest es un clasificador random forest ya entrenado. Es inmutable tras Fit o Load.
type Forest struct {
	FeatureNames []string `json:"feature_names"`
	Classes      []string `json:"classes"`
	NEstimators  int      `json:"n_estimators"`
	Seed         int64    `json:"seed"`
	Trees        []Tree   `json:"trees"`
}

// Fit entrena un bosque con muestreo bootstrap sobre todas las filas recibidas.
func Fit(featureNames []string, x [][]float64, labels []string, p Params) (*Forest, error) {
	if len(x) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(x) != len(labels) {
		return nil, fmt.Errorf("fit: %d rows but %d labels", len(x), len(labels))
	}
	for i, row := range x {
		if len(row) != len(featureNames) {
			return nil, fmt.Errorf("%w: row %d has %d features, expected %d", ErrFeatureMismatch, i, len(row), len(featureNames))
		}
	}
	if p.NEstimators <= 0 {
		p.NEstimators = 100
	}
	maxFeatures := p.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(featureNames))))
	}
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	classes := uniqueSorted(labels)
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = index[l]
	}

	rng := rand.New(rand.NewSource(p.Seed))
	trees := make([]Tree, 0, p.NEstimators)
	for t := 0; t < p.NEstimators; t++ {
		treeRng := rand.New(rand.NewSource(rng.Int63()))
		samples := make([]int, len(x))
		for i := range samples {
			samples[i] = treeRng.Intn(len(x))
		}
		trees = append(trees, buildTree(x, y, samples, len(classes), maxFeatures, treeRng))
	}

	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return &Forest{
		FeatureNames: names,
		Classes:      classes,
		NEstimators:  p.NEstimators,
		Seed:         p.Seed,
		Trees:        trees,
	}, nil
}

// PredictProba devuelve la probabilidad promedio de cada clase, en el orden de Classes.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if f == nil || len(f.Trees) == 0 {
		return nil, ErrNotFitted
	}
	if len(x) != len(f.FeatureNames) {
		return nil, fmt.Errorf("%w: X has %d features, but the model is expecting %d features as input", ErrFeatureMismatch, len(x), len(f.FeatureNames))
	}
	proba := make([]float64, len(f.Classes))
	for _, t := range f.Trees {
		for i, v := range t.leaf(x) {
			proba[i] += v
		}
	}
	n := float64(len(f.Trees))
	for i := range proba {
		proba[i] /= n
	}
	return proba, nil
}

// Predict devuelve la clase con mayor probabilidad; los empates se resuelven por orden de Classes.
func (f *Forest) Predict(x []float64) (string, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return "", err
	}
	return f.Classes[argmax(proba)], nil
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
