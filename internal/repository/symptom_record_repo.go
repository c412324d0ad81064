package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"symptom-predictor/internal/domain"
)

// SymptomRecordRepository expone las filas de entrenamiento guardadas en Postgres.
type SymptomRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.SymptomRecord, error)
}

type PgSymptomRecordRepository struct {
	pool *pgxpool.Pool
}

func NewPgSymptomRecordRepository(pool *pgxpool.Pool) *PgSymptomRecordRepository {
	return &PgSymptomRecordRepository{pool: pool}
}

func (r *PgSymptomRecordRepository) ListAll(ctx context.Context) ([]domain.SymptomRecord, error) {
	const query = `
		SELECT fever, headache, cough, fatigue, vomiting, cold, disease
		FROM symptom_records
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SymptomRecord
	for rows.Next() {
		var s domain.Symptoms
		var disease string
		err = rows.Scan(
			&s.Fever,
			&s.Headache,
			&s.Cough,
			&s.Fatigue,
			&s.Vomiting,
			&s.Cold,
			&disease,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SymptomRecord{
			Features: s.Vector(),
			Disease:  disease,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
