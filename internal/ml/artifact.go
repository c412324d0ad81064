package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const artifactFormat = "random_forest/v1"

var ErrInvalidArtifact = errors.New("invalid model artifact")

type artifact struct {
	Format string  `json:"format"`
	Model  *Forest `json:"model"`
}

// Encode escribe el bosque como JSON.
func (f *Forest) Encode(w io.Writer) error {
	if f == nil || len(f.Trees) == 0 {
		return ErrNotFitted
	}
	enc := json.NewEncoder(w)
	return enc.Encode(artifact{Format: artifactFormat, Model: f})
}

// Save serializa el bosque en path, reemplazando cualquier artefacto previo.
func (f *Forest) Save(path string) error {
	if f == nil || len(f.Trees) == 0 {
		return ErrNotFitted
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := f.Encode(file); err != nil {
		file.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	return file.Close()
}

// Decode lee un bosque serializado con Encode y valida su estructura.
func Decode(r io.Reader) (*Forest, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if a.Format != artifactFormat {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidArtifact, a.Format)
	}
	if err := a.Model.validate(); err != nil {
		return nil, err
	}
	return a.Model, nil
}

// Load abre y decodifica el artefacto en path.
func Load(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

func (f *Forest) validate() error {
	if f == nil || len(f.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	if len(f.Classes) == 0 || len(f.FeatureNames) == 0 {
		return fmt.Errorf("%w: missing classes or features", ErrInvalidArtifact)
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrInvalidArtifact, ti)
		}
		for ni, n := range t.Nodes {
			if n.Feature == leafFeature {
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("%w: tree %d leaf %d has %d values", ErrInvalidArtifact, ti, ni, len(n.Value))
				}
				continue
			}
			// Los hijos siempre se agregan después del padre, lo que descarta ciclos.
			if n.Feature < 0 || n.Feature >= len(f.FeatureNames) ||
				n.Left <= ni || n.Left >= len(t.Nodes) ||
				n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("%w: tree %d node %d is malformed", ErrInvalidArtifact, ti, ni)
			}
		}
	}
	return nil
}
