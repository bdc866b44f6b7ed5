package repository

import (
	"context"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

const shiftColumns = `
	id,
	company_id,
	title,
	start_time,
	end_time,
	hourly_rate,
	vacancies_total,
	vacancies_taken,
	status,
	created_at,
	version
`

func shiftDst(shift *domain.Shift) []any {
	return []any{
		&shift.ID,
		&shift.CompanyID,
		&shift.Title,
		&shift.StartTime,
		&shift.EndTime,
		&shift.HourlyRate,
		&shift.VacanciesTotal,
		&shift.VacanciesTaken,
		&shift.Status,
		&shift.CreatedAt,
		&shift.Version,
	}
}

// GetShiftsByCompanyID 按开始时间排序，已取消的班次不返回
func (r *Repository) GetShiftsByCompanyID(companyID int64) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE company_id = $1 AND status <> 'cancelled'
		ORDER BY start_time, id
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.Shift{}
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(shiftDst(&shift)...); err != nil {
			return nil, err
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	var shift domain.Shift
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(shiftDst(&shift)...); err != nil {
		return nil, err
	}

	return &shift, nil
}

func (r *Repository) InsertShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (company_id, title, start_time, end_time, hourly_rate, vacancies_total)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		RETURNING id, vacancies_taken, status, created_at, version
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	params := []any{
		shift.CompanyID,
		shift.Title,
		shift.StartTime,
		shift.EndTime,
		shift.HourlyRate.String(),
		shift.VacanciesTotal,
	}
	dst := []any{&shift.ID, &shift.VacanciesTaken, &shift.Status, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}
