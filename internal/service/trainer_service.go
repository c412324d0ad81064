package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"symptom-predictor/internal/dataset"
	"symptom-predictor/internal/domain"
	"symptom-predictor/internal/ml"
	"symptom-predictor/internal/repository"
)

// DatasetSource entrega las filas de entrenamiento.
type DatasetSource interface {
	Load(ctx context.Context) (dataset.Dataset, error)
}

// CSVSource lee el dataset desde un archivo CSV.
type CSVSource struct {
	Path string
}

func (s CSVSource) Load(_ context.Context) (dataset.Dataset, error) {
	return dataset.LoadCSV(s.Path)
}

// RepositorySource lee el dataset desde la tabla symptom_records.
type RepositorySource struct {
	Repo repository.SymptomRecordRepository
}

func (s RepositorySource) Load(ctx context.Context) (dataset.Dataset, error) {
	records, err := s.Repo.ListAll(ctx)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("list symptom records: %w", err)
	}
	names := make([]string, len(domain.FeatureNames))
	copy(names, domain.FeatureNames)
	return dataset.Dataset{FeatureNames: names, Records: records}, nil
}

// TrainerService entrena el bosque sobre todo el dataset y lo guarda en disco.
type TrainerService struct {
	logger    *zap.Logger
	out       io.Writer
	params    ml.Params
	modelPath string
}

func NewTrainerService(logger *zap.Logger, out io.Writer, params ml.Params, modelPath string) *TrainerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &TrainerService{
		logger:    logger,
		out:       out,
		params:    params,
		modelPath: modelPath,
	}
}

// Train devuelve dataset.ErrNotFound sin escribir nada si el dataset no existe.
func (s *TrainerService) Train(ctx context.Context, source DatasetSource) (*ml.Forest, error) {
	ds, err := source.Load(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			fmt.Fprintln(s.out, "Dataset not found!")
		}
		return nil, err
	}
	s.logger.Info("dataset loaded",
		zap.Int("rows", len(ds.Records)),
		zap.Strings("features", ds.FeatureNames),
	)

	forest, err := ml.Fit(ds.FeatureNames, ds.Matrix(), ds.Labels(), s.params)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	if err := forest.Save(s.modelPath); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	s.logger.Info("model saved",
		zap.String("path", s.modelPath),
		zap.Int("trees", len(forest.Trees)),
		zap.Int64("seed", forest.Seed),
	)

	fmt.Fprintf(s.out, "Model trained and saved as %s\n", s.modelPath)
	fmt.Fprintf(s.out, "Features: %s\n", strings.Join(forest.FeatureNames, ", "))
	fmt.Fprintf(s.out, "Classes: %s\n", strings.Join(forest.Classes, ", "))
	return forest, nil
}
