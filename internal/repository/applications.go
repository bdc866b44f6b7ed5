package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

// 申请总是带上员工的联系方式，是否可见由 staffing 包决定
const applicationQuery = `
	SELECT
		a.id,
		a.shift_id,
		a.worker_id,
		a.status,
		a.applied_at,
		a.worker_message,
		a.version,
		w.full_name,
		w.email,
		w.phone
	FROM applications a
	JOIN workers w ON w.id = a.worker_id
`

func scanApplication(row interface{ Scan(dest ...any) error }) (*domain.Application, error) {
	app := domain.Application{Worker: &domain.WorkerContact{}}
	var message sql.NullString

	dst := []any{
		&app.ID,
		&app.ShiftID,
		&app.WorkerID,
		&app.Status,
		&app.AppliedAt,
		&message,
		&app.Version,
		&app.Worker.FullName,
		&app.Worker.Email,
		&app.Worker.Phone,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if message.Valid {
		app.WorkerMessage = &message.String
	}

	return &app, nil
}

func (r *Repository) queryApplications(query string, args ...any) ([]*domain.Application, error) {
	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) GetApplicationsByShiftID(shiftID int64) ([]*domain.Application, error) {
	return r.queryApplications(applicationQuery+`
		WHERE a.shift_id = $1
		ORDER BY a.applied_at, a.id
	`, shiftID)
}

func (r *Repository) GetApplicationsByCompanyID(companyID int64) ([]*domain.Application, error) {
	return r.queryApplications(applicationQuery+`
		JOIN shifts s ON s.id = a.shift_id
		WHERE s.company_id = $1 AND s.status <> 'cancelled'
		ORDER BY a.applied_at, a.id
	`, companyID)
}

func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	return scanApplication(r.dbpool.QueryRowContext(ctx, applicationQuery+`WHERE a.id = $1`, id))
}

func (r *Repository) InsertApplication(app *domain.Application) error {
	query := `
		INSERT INTO applications (shift_id, worker_id, status, applied_at, worker_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	params := []any{app.ShiftID, app.WorkerID, string(app.Status), app.AppliedAt, app.WorkerMessage}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&app.ID, &app.Version); err != nil {
		return err
	}

	return nil
}

// lockShift 锁住班次所在行，返回剩余名额
func lockShift(ctx context.Context, tx *sql.Tx, shiftID int64) (int32, error) {
	query := `
		SELECT vacancies_total - vacancies_taken, end_time < NOW()
		FROM shifts
		WHERE id = $1
		FOR UPDATE
	`

	var slotsLeft int32
	var ended bool
	if err := tx.QueryRowContext(ctx, query, shiftID).Scan(&slotsLeft, &ended); err != nil {
		return 0, err
	}
	if ended {
		return 0, ErrShiftEnded
	}

	return slotsLeft, nil
}

func takeVacancies(ctx context.Context, tx *sql.Tx, shiftID int64, n int) error {
	query := `
		UPDATE shifts
		SET
			vacancies_taken = vacancies_taken + $2,
			status = CASE WHEN vacancies_taken + $2 >= vacancies_total THEN 'full' ELSE status END,
			version = version + 1
		WHERE id = $1
	`

	_, err := tx.ExecContext(ctx, query, shiftID, n)
	return err
}

// FillVacancies 要么给定的申请全部被录用，要么一个都不变
func (r *Repository) FillVacancies(ctx context.Context, shiftID int64, applicationIDs []int64) error {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	slotsLeft, err := lockShift(ctx, tx, shiftID)
	if err != nil {
		return err
	}
	if int(slotsLeft) < len(applicationIDs) {
		return ErrNotEnoughVacancies
	}

	query := `
		UPDATE applications
		SET status = 'accepted', version = version + 1
		WHERE shift_id = $1 AND id = ANY($2) AND status = 'pending'
	`
	result, err := tx.ExecContext(ctx, query, shiftID, applicationIDs)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if int(affected) != len(applicationIDs) {
		return ErrApplicationsChanged
	}

	if err := takeVacancies(ctx, tx, shiftID, len(applicationIDs)); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) RejectAllPending(ctx context.Context, shiftID int64) error {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockShift(ctx, tx, shiftID); err != nil {
		return err
	}

	query := `
		UPDATE applications
		SET status = 'rejected', version = version + 1
		WHERE shift_id = $1 AND status = 'pending'
	`
	result, err := tx.ExecContext(ctx, query, shiftID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationsChanged
	}

	return tx.Commit()
}

func (r *Repository) AcceptApplication(ctx context.Context, applicationID int64) error {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var shiftID int64
	query := `SELECT shift_id FROM applications WHERE id = $1`
	if err := tx.QueryRowContext(ctx, query, applicationID).Scan(&shiftID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrApplicationNotFound
		}
		return err
	}

	// 先锁班次再改申请，和 FillVacancies 的加锁顺序保持一致
	slotsLeft, err := lockShift(ctx, tx, shiftID)
	if err != nil {
		return err
	}
	if slotsLeft <= 0 {
		return ErrNotEnoughVacancies
	}

	if err := r.updateApplicationStatus(ctx, tx, applicationID, domain.ApplicationStatusAccepted,
		domain.ApplicationStatusPending, domain.ApplicationStatusWaitlist); err != nil {
		return err
	}

	if err := takeVacancies(ctx, tx, shiftID, 1); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) RejectApplication(ctx context.Context, applicationID int64) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.updateApplicationStatus(ctx, r.dbpool, applicationID, domain.ApplicationStatusRejected,
		domain.ApplicationStatusPending, domain.ApplicationStatusWaitlist)
}

func (r *Repository) WaitlistApplication(ctx context.Context, applicationID int64) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.updateApplicationStatus(ctx, r.dbpool, applicationID, domain.ApplicationStatusWaitlist,
		domain.ApplicationStatusPending)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateApplicationStatus 只有当前状态属于 from 时才会更新
func (r *Repository) updateApplicationStatus(ctx context.Context, db execer, id int64, to domain.ApplicationStatus, from ...domain.ApplicationStatus) error {
	allowed := make([]string, len(from))
	for i, status := range from {
		allowed[i] = string(status)
	}

	query := `
		UPDATE applications
		SET status = $2, version = version + 1
		WHERE id = $1 AND status = ANY($3)
	`
	result, err := db.ExecContext(ctx, query, id, string(to), allowed)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// InsertHiredApplication 直接插入一份已录用的申请并占用名额，不检查班次是否已经结束，只用于生成演示数据
func (r *Repository) InsertHiredApplication(app *domain.Application) error {
	ctx, cancel := r.transactionContext(context.Background())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO applications (shift_id, worker_id, status, applied_at, worker_message)
		VALUES ($1, $2, 'accepted', $3, $4)
		RETURNING id, status, version
	`
	params := []any{app.ShiftID, app.WorkerID, app.AppliedAt, app.WorkerMessage}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&app.ID, &app.Status, &app.Version); err != nil {
		return err
	}

	if err := takeVacancies(ctx, tx, app.ShiftID, 1); err != nil {
		return err
	}

	return tx.Commit()
}
