package staffing

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Collaborator 是外部持久化层，每个方法都必须原子地生效，不允许部分成功
type Collaborator interface {
	FillVacancies(ctx context.Context, shiftID int64, applicationIDs []int64) error
	RejectAllPending(ctx context.Context, shiftID int64) error
	AcceptApplication(ctx context.Context, applicationID int64) error
	RejectApplication(ctx context.Context, applicationID int64) error
	WaitlistApplication(ctx context.Context, applicationID int64) error
	ApproveTimesheet(ctx context.Context, timesheetID int64) error
	DisputeTimesheet(ctx context.Context, timesheetID int64, reason string) error
	CorrectTimesheetHours(ctx context.Context, timesheetID int64, hours decimal.Decimal) error
}

// RatingHook 在确认或提出异议之前先收集对员工的评分，只有知道员工 ID 时才会调用
type RatingHook interface {
	BeforeApprove(ctx context.Context, ts *domain.Timesheet, review Review) error
	BeforeDispute(ctx context.Context, ts *domain.Timesheet, review Review) error
}

// Engine 不持有任何实体的副本，也不会在持久化层确认之前修改传入的快照，
// 调用方在成功之后需要重新读取
type Engine struct {
	collaborator Collaborator
	guard        Guard
	ratingHook   RatingHook
}

func New(collaborator Collaborator, guard Guard, hook RatingHook) *Engine {
	if guard == nil {
		guard = NewMemoryGuard()
	}

	return &Engine{
		collaborator: collaborator,
		guard:        guard,
		ratingHook:   hook,
	}
}

// run 在调用持久化层之前同步地占用 key，无论结果如何都会释放
func (e *Engine) run(ctx context.Context, key string, op func(ctx context.Context) error) error {
	ok, err := e.guard.TryAcquire(ctx, key)
	if err != nil {
		return collaboratorError(err)
	}
	if !ok {
		return concurrentOperationError(key)
	}
	defer e.guard.Release(context.WithoutCancel(ctx), key)

	if err := op(ctx); err != nil {
		var engineErr *Error
		if errors.As(err, &engineErr) {
			return engineErr
		}
		return collaboratorError(err)
	}

	return nil
}

// FillVacancies 返回本次录用的申请 ID，没有可录用的申请时不会调用持久化层
func (e *Engine) FillVacancies(ctx context.Context, shift *domain.Shift, apps []*domain.Application, now time.Time) ([]int64, error) {
	if !IsActionable(shift.Window(), now) {
		return nil, windowClosedError("班次已结束，无法补满名额")
	}

	ids := ShiftFillIDs(shift, apps)
	if len(ids) == 0 {
		return nil, validationError("没有空缺名额或没有待处理的申请")
	}

	if err := e.run(ctx, ShiftKey(shift.ID), func(ctx context.Context) error {
		return e.collaborator.FillVacancies(ctx, shift.ID, ids)
	}); err != nil {
		return nil, err
	}

	slog.Info("已补满班次名额", "shift_id", shift.ID, "application_ids", ids)
	return ids, nil
}

// RejectAllPending 返回被拒绝的申请，没有待处理申请时不会调用持久化层
func (e *Engine) RejectAllPending(ctx context.Context, shift *domain.Shift, apps []*domain.Application, now time.Time) ([]*domain.Application, error) {
	if !IsActionable(shift.Window(), now) {
		return nil, windowClosedError("班次已结束，无法再处理申请")
	}

	pending := CanBulkReject(shift, apps, now)
	if len(pending) == 0 {
		return nil, validationError("没有待处理的申请")
	}

	if err := e.run(ctx, ShiftKey(shift.ID), func(ctx context.Context) error {
		return e.collaborator.RejectAllPending(ctx, shift.ID)
	}); err != nil {
		return nil, err
	}

	slog.Info("已拒绝全部待处理申请", "shift_id", shift.ID, "count", len(pending))
	return pending, nil
}

func (e *Engine) AcceptApplication(ctx context.Context, shift *domain.Shift, app *domain.Application, now time.Time) error {
	return e.transition(ctx, shift, app, domain.ApplicationStatusAccepted, now, e.collaborator.AcceptApplication)
}

func (e *Engine) RejectApplication(ctx context.Context, shift *domain.Shift, app *domain.Application, now time.Time) error {
	return e.transition(ctx, shift, app, domain.ApplicationStatusRejected, now, e.collaborator.RejectApplication)
}

func (e *Engine) WaitlistApplication(ctx context.Context, shift *domain.Shift, app *domain.Application, now time.Time) error {
	return e.transition(ctx, shift, app, domain.ApplicationStatusWaitlist, now, e.collaborator.WaitlistApplication)
}

func (e *Engine) transition(
	ctx context.Context,
	shift *domain.Shift,
	app *domain.Application,
	to domain.ApplicationStatus,
	now time.Time,
	apply func(ctx context.Context, applicationID int64) error,
) error {
	if err := validateApplicationTransition(shift, app, to, now); err != nil {
		return err
	}

	if err := e.run(ctx, ApplicationKey(app.ID), func(ctx context.Context) error {
		return apply(ctx, app.ID)
	}); err != nil {
		return err
	}

	slog.Info("申请状态已变更", "application_id", app.ID, "from", app.Status, "to", to)
	return nil
}

func (e *Engine) ApproveTimesheet(ctx context.Context, ts *domain.Timesheet, review Review) error {
	if err := ValidateApprove(ts); err != nil {
		return err
	}

	if err := e.run(ctx, TimesheetKey(ts.ID), func(ctx context.Context) error {
		if e.ratingHook != nil && ts.WorkerID != 0 {
			if err := e.ratingHook.BeforeApprove(ctx, ts, review); err != nil {
				return err
			}
		}
		return e.collaborator.ApproveTimesheet(ctx, ts.ID)
	}); err != nil {
		return err
	}

	slog.Info("工时单已确认", "timesheet_id", ts.ID)
	return nil
}

func (e *Engine) DisputeTimesheet(ctx context.Context, ts *domain.Timesheet, review Review) error {
	if err := ValidateDispute(ts, review.Reason); err != nil {
		return err
	}

	reason := strings.TrimSpace(review.Reason)
	if err := e.run(ctx, TimesheetKey(ts.ID), func(ctx context.Context) error {
		if e.ratingHook != nil && ts.WorkerID != 0 {
			if err := e.ratingHook.BeforeDispute(ctx, ts, review); err != nil {
				return err
			}
		}
		return e.collaborator.DisputeTimesheet(ctx, ts.ID, reason)
	}); err != nil {
		return err
	}

	slog.Info("工时单已提出异议", "timesheet_id", ts.ID)
	return nil
}

// CorrectTimesheet 返回交给持久化层的修正后工时
func (e *Engine) CorrectTimesheet(ctx context.Context, ts *domain.Timesheet, extraMinutes int) (decimal.Decimal, error) {
	if err := ValidateCorrection(ts, extraMinutes); err != nil {
		return decimal.Zero, err
	}

	hours := CorrectedHours(ts, extraMinutes)
	if err := e.run(ctx, TimesheetKey(ts.ID), func(ctx context.Context) error {
		return e.collaborator.CorrectTimesheetHours(ctx, ts.ID, hours)
	}); err != nil {
		return decimal.Zero, err
	}

	slog.Info("工时单已修正", "timesheet_id", ts.ID, "hours", hours.String())
	return hours, nil
}

// ReviewTimesheet 按评分弹窗的三种结果分别走确认、异议和加班修正
func (e *Engine) ReviewTimesheet(ctx context.Context, ts *domain.Timesheet, review Review) error {
	switch review.Outcome {
	case ReviewApprove:
		return e.ApproveTimesheet(ctx, ts, review)
	case ReviewDispute:
		return e.DisputeTimesheet(ctx, ts, review)
	case ReviewAddOvertime:
		_, err := e.CorrectTimesheet(ctx, ts, review.ExtraMinutes)
		return err
	default:
		return validationError("未知的审核结果 " + string(review.Outcome))
	}
}
