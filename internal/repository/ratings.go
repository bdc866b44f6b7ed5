package repository

import (
	"context"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

// InsertWorkerRating 同一张工时单重复评分时覆盖之前的评分
func (r *Repository) InsertWorkerRating(ctx context.Context, rating *domain.WorkerRating) error {
	query := `
		INSERT INTO worker_ratings (timesheet_id, worker_id, company_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (timesheet_id) DO UPDATE
		SET rating = EXCLUDED.rating, comment = EXCLUDED.comment
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	params := []any{rating.TimesheetID, rating.WorkerID, rating.CompanyID, rating.Rating, rating.Comment}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&rating.ID, &rating.CreatedAt); err != nil {
		return err
	}

	return nil
}
