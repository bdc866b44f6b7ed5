package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/shopspring/decimal"
)

const timesheetQuery = `
	SELECT
		t.id,
		t.shift_id,
		s.company_id,
		s.title,
		t.worker_id,
		t.status,
		t.manager_approved_start,
		t.manager_approved_end,
		s.start_time,
		s.end_time,
		t.total_pay,
		t.was_disputed,
		t.dispute_reason,
		t.rejection_reason,
		t.created_at,
		t.version
	FROM timesheets t
	JOIN shifts s ON s.id = t.shift_id
`

// 人工确认的时间缺失时按班次时间计算工时
const workedHoursExpr = `
	EXTRACT(EPOCH FROM (
		COALESCE(t.manager_approved_end, s.end_time) - COALESCE(t.manager_approved_start, s.start_time)
	))::numeric / 3600
`

func scanTimesheet(row interface{ Scan(dest ...any) error }) (*domain.Timesheet, error) {
	var ts domain.Timesheet
	var (
		approvedStart   sql.NullTime
		approvedEnd     sql.NullTime
		totalPay        decimal.NullDecimal
		disputeReason   sql.NullString
		rejectionReason sql.NullString
	)

	dst := []any{
		&ts.ID,
		&ts.ShiftID,
		&ts.CompanyID,
		&ts.ShiftTitle,
		&ts.WorkerID,
		&ts.Status,
		&approvedStart,
		&approvedEnd,
		&ts.ShiftStartTime,
		&ts.ShiftEndTime,
		&totalPay,
		&ts.WasDisputed,
		&disputeReason,
		&rejectionReason,
		&ts.CreatedAt,
		&ts.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if approvedStart.Valid {
		ts.ManagerApprovedStart = &approvedStart.Time
	}
	if approvedEnd.Valid {
		ts.ManagerApprovedEnd = &approvedEnd.Time
	}
	if totalPay.Valid {
		ts.TotalPay = &totalPay.Decimal
	}
	if disputeReason.Valid {
		ts.DisputeReason = &disputeReason.String
	}
	if rejectionReason.Valid {
		ts.RejectionReason = &rejectionReason.String
	}

	return &ts, nil
}

// GetTimesheetsByCompanyID 待审核和有异议的排在前面
func (r *Repository) GetTimesheetsByCompanyID(companyID int64) ([]*domain.Timesheet, error) {
	query := timesheetQuery + `
		WHERE s.company_id = $1
		ORDER BY
			CASE t.status WHEN 'pending' THEN 0 WHEN 'disputed' THEN 1 ELSE 2 END,
			s.start_time DESC,
			t.id
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timesheets := []*domain.Timesheet{}
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		timesheets = append(timesheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timesheets, nil
}

func (r *Repository) GetTimesheetByID(id int64) (*domain.Timesheet, error) {
	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	return scanTimesheet(r.dbpool.QueryRowContext(ctx, timesheetQuery+`WHERE t.id = $1`, id))
}

func (r *Repository) InsertTimesheet(ts *domain.Timesheet) error {
	query := `
		INSERT INTO timesheets (shift_id, worker_id, manager_approved_start, manager_approved_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	params := []any{ts.ShiftID, ts.WorkerID, ts.ManagerApprovedStart, ts.ManagerApprovedEnd}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&ts.ID, &ts.Status, &ts.CreatedAt, &ts.Version); err != nil {
		return err
	}

	return nil
}

// ApproveTimesheet 确认工时并结算工资，同时把对应的申请标记为已完成
func (r *Repository) ApproveTimesheet(ctx context.Context, timesheetID int64) error {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE timesheets t
		SET
			status = 'approved',
			total_pay = COALESCE(t.total_pay, ROUND(` + workedHoursExpr + ` * s.hourly_rate, 2)),
			version = t.version + 1
		FROM shifts s
		WHERE s.id = t.shift_id AND t.id = $1 AND t.status = 'pending'
		RETURNING t.shift_id, t.worker_id
	`

	var shiftID, workerID int64
	if err := tx.QueryRowContext(ctx, query, timesheetID).Scan(&shiftID, &workerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTimesheetNotPending
		}
		return err
	}

	query = `
		UPDATE applications
		SET status = 'completed', version = version + 1
		WHERE shift_id = $1 AND worker_id = $2 AND status = 'accepted'
	`
	if _, err := tx.ExecContext(ctx, query, shiftID, workerID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DisputeTimesheet(ctx context.Context, timesheetID int64, reason string) error {
	query := `
		UPDATE timesheets
		SET status = 'disputed', was_disputed = TRUE, dispute_reason = $2, version = version + 1
		WHERE id = $1 AND status = 'pending'
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, timesheetID, reason)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTimesheetNotPending
	}

	return nil
}

// CorrectTimesheetHours 以确认的开始时间为锚点重新计算结束时间和工资，工时单回到待审核状态
func (r *Repository) CorrectTimesheetHours(ctx context.Context, timesheetID int64, hours decimal.Decimal) error {
	query := `
		UPDATE timesheets t
		SET
			manager_approved_start = COALESCE(t.manager_approved_start, s.start_time),
			manager_approved_end = COALESCE(t.manager_approved_start, s.start_time) + ($2::numeric)::float8 * INTERVAL '1 hour',
			total_pay = ROUND($2::numeric * s.hourly_rate, 2),
			status = 'pending',
			version = t.version + 1
		FROM shifts s
		WHERE s.id = t.shift_id AND t.id = $1 AND t.status IN ('pending', 'disputed')
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, timesheetID, hours.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTimesheetNotEditable
	}

	return nil
}
