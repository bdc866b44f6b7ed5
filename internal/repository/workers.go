package repository

import (
	"context"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	query := `
		SELECT id, full_name, email, phone, created_at, version
		FROM workers
		WHERE id = $1
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	var worker domain.Worker
	dst := []any{&worker.ID, &worker.FullName, &worker.Email, &worker.Phone, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return &worker, nil
}

func (r *Repository) GetAllWorkers() ([]*domain.Worker, error) {
	query := `
		SELECT id, full_name, email, phone, created_at, version
		FROM workers
		ORDER BY id
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := []*domain.Worker{}
	for rows.Next() {
		var worker domain.Worker
		dst := []any{&worker.ID, &worker.FullName, &worker.Email, &worker.Phone, &worker.CreatedAt, &worker.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workers = append(workers, &worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) InsertWorker(worker *domain.Worker) error {
	query := `
		INSERT INTO workers (full_name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, worker.FullName, worker.Email, worker.Phone).Scan(&worker.ID, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}
