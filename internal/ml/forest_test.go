package ml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFeatures = []string{"fever", "headache", "cough", "fatigue", "vomiting", "cold"}

func testDataset() ([][]float64, []string) {
	base := []struct {
		x     []float64
		label string
	}{
		{[]float64{1, 0, 1, 1, 0, 1}, "Flu"},
		{[]float64{0, 0, 1, 0, 0, 1}, "Cold"},
		{[]float64{0, 1, 0, 0, 0, 0}, "Migraine"},
		{[]float64{0, 0, 0, 1, 1, 0}, "Food Poisoning"},
		{[]float64{1, 0, 1, 1, 0, 0}, "Pneumonia"},
		{[]float64{0, 0, 0, 1, 0, 0}, "Fatigue"},
		{[]float64{0, 0, 0, 0, 0, 0}, "Healthy"},
		{[]float64{1, 1, 1, 1, 1, 1}, "Severe Infection"},
	}
	var x [][]float64
	var y []string
	for i := 0; i < 4; i++ {
		for _, b := range base {
			x = append(x, b.x)
			y = append(y, b.label)
		}
	}
	return x, y
}

func TestFitReproducesTrainingLabels(t *testing.T) {
	x, y := testDataset()
	forest, err := Fit(testFeatures, x, y, Params{NEstimators: 100, Seed: 42})
	require.NoError(t, err)

	for i := range x {
		got, err := forest.Predict(x[i])
		require.NoError(t, err)
		assert.Equal(t, y[i], got, "row %d", i)
	}
}

func TestFitClassesAreSorted(t *testing.T) {
	x, y := testDataset()
	forest, err := Fit(testFeatures, x, y, Params{NEstimators: 10, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cold", "Fatigue", "Flu", "Food Poisoning", "Healthy", "Migraine", "Pneumonia", "Severe Infection"}, forest.Classes)
	assert.Equal(t, testFeatures, forest.FeatureNames)
	assert.Len(t, forest.Trees, 10)
}

func TestFitIsDeterministicForSeed(t *testing.T) {
	x, y := testDataset()
	a, err := Fit(testFeatures, x, y, Params{NEstimators: 25, Seed: 42})
	require.NoError(t, err)
	b, err := Fit(testFeatures, x, y, Params{NEstimators: 25, Seed: 42})
	require.NoError(t, err)

	var bufA, bufB bytes.Buffer
	require.NoError(t, a.Encode(&bufA))
	require.NoError(t, b.Encode(&bufB))
	assert.Equal(t, bufA.String(), bufB.String())
}

func TestPredictProbaSumsToOne(t *testing.T) {
	x, y := testDataset()
	forest, err := Fit(testFeatures, x, y, Params{NEstimators: 30, Seed: 42})
	require.NoError(t, err)

	for mask := 0; mask < 64; mask++ {
		v := make([]float64, 6)
		for i := range v {
			if mask&(1<<i) != 0 {
				v[i] = 1
			}
		}
		proba, err := forest.PredictProba(v)
		require.NoError(t, err)
		require.Len(t, proba, len(forest.Classes))
		sum := 0.0
		for _, p := range proba {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestPredictRejectsWrongVectorLength(t *testing.T) {
	x, y := testDataset()
	forest, err := Fit(testFeatures, x, y, Params{NEstimators: 5, Seed: 42})
	require.NoError(t, err)

	_, err = forest.Predict([]float64{1, 0, 1})
	assert.ErrorIs(t, err, ErrFeatureMismatch)
}

func TestPredictOnUnfittedForest(t *testing.T) {
	var forest *Forest
	_, err := forest.Predict([]float64{0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFitValidatesInput(t *testing.T) {
	_, err := Fit(testFeatures, nil, nil, Params{})
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Fit(testFeatures, [][]float64{{1, 0}}, []string{"Flu"}, Params{})
	assert.ErrorIs(t, err, ErrFeatureMismatch)

	_, err = Fit(testFeatures, [][]float64{{1, 0, 1, 1, 0, 1}}, nil, Params{})
	assert.Error(t, err)
}

func TestFitSingleClass(t *testing.T) {
	x := [][]float64{{0, 0, 0, 0, 0, 0}, {1, 1, 1, 1, 1, 1}}
	forest, err := Fit(testFeatures, x, []string{"Healthy", "Healthy"}, Params{NEstimators: 3, Seed: 1})
	require.NoError(t, err)

	proba, err := forest.PredictProba([]float64{1, 0, 1, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, proba)
}
