package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"symptom-predictor/internal/domain"
)

var (
	ErrNotFound     = errors.New("dataset not found")
	ErrMissingLabel = errors.New("dataset has no label column")
)

// Dataset contiene las filas de entrenamiento y el orden de sus atributos.
type Dataset struct {
	FeatureNames []string
	Records      []domain.SymptomRecord
}

// Labels devuelve la columna de etiquetas.
func (d Dataset) Labels() []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Disease
	}
	return out
}

// Matrix devuelve los atributos de cada fila.
func (d Dataset) Matrix() [][]float64 {
	out := make([][]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Features
	}
	return out
}

// LoadCSV abre path y lo parsea con ParseCSV.
func LoadCSV(path string) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Dataset{}, err
	}
	defer file.Close()
	return ParseCSV(file)
}

// ParseCSV lee un CSV con encabezado. La columna Disease es la etiqueta y
// todas las demás, en el orden del encabezado, son atributos numéricos.
func ParseCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	labelIdx := -1
	var features []string
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == domain.LabelColumn {
			labelIdx = i
			continue
		}
		features = append(features, col)
	}
	if labelIdx < 0 {
		return Dataset{}, ErrMissingLabel
	}

	ds := Dataset{FeatureNames: features}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return Dataset{}, fmt.Errorf("read line %d: %w", line, err)
		}

		rec := domain.SymptomRecord{Features: make([]float64, 0, len(features))}
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if i == labelIdx {
				rec.Disease = cell
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
			rec.Features = append(rec.Features, v)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}
