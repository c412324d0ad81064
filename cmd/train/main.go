package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"symptom-predictor/internal/config"
	"symptom-predictor/internal/dataset"
	"symptom-predictor/internal/db"
	"symptom-predictor/internal/ml"
	"symptom-predictor/internal/repository"
	"symptom-predictor/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		datasetPath string
		modelPath   string
		estimators  int
		seed        int64
		fromDB      bool
	)

	cmd := &cobra.Command{
		Use:          "train",
		Short:        "Fit the symptom classifier and write the model artifact",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			_ = godotenv.Load()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("dataset") {
				cfg.DatasetPath = datasetPath
			}
			if flags.Changed("model") {
				cfg.ModelPath = modelPath
			}
			if flags.Changed("estimators") {
				cfg.TrainEstimators = estimators
			}
			if flags.Changed("seed") {
				cfg.TrainSeed = seed
			}

			logger := zap.NewExample()
			defer logger.Sync()

			var source service.DatasetSource = service.CSVSource{Path: cfg.DatasetPath}
			if fromDB {
				pool, err := db.NewPool(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect database: %w", err)
				}
				defer pool.Close()
				ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
				err = db.Ping(ctxPing, pool)
				cancel()
				if err != nil {
					return fmt.Errorf("connect database: %w", err)
				}
				source = service.RepositorySource{Repo: repository.NewPgSymptomRecordRepository(pool)}
			}

			trainer := service.NewTrainerService(logger, cmd.OutOrStdout(), ml.Params{
				NEstimators: cfg.TrainEstimators,
				Seed:        cfg.TrainSeed,
			}, cfg.ModelPath)

			_, err = trainer.Train(ctx, source)
			if errors.Is(err, dataset.ErrNotFound) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "dataset.csv", "CSV dataset path (overrides DATASET_PATH)")
	cmd.Flags().StringVar(&modelPath, "model", "model.json", "model artifact output path (overrides MODEL_PATH)")
	cmd.Flags().IntVar(&estimators, "estimators", 100, "number of trees (overrides TRAIN_ESTIMATORS)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed (overrides TRAIN_SEED)")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "read training rows from the symptom_records table in DATABASE_URL")
	return cmd
}
