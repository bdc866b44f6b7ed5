package staffing

import (
	"slices"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

// accepted 和 rejected 是终态，没有出边
var applicationTransitions = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.ApplicationStatusPending: {
		domain.ApplicationStatusAccepted,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusWaitlist,
	},
	domain.ApplicationStatusWaitlist: {
		domain.ApplicationStatusAccepted,
		domain.ApplicationStatusRejected,
	},
}

func CanTransition(from, to domain.ApplicationStatus) bool {
	return slices.Contains(applicationTransitions[from], to)
}

func isHired(status domain.ApplicationStatus) bool {
	return status == domain.ApplicationStatusAccepted || status == domain.ApplicationStatusCompleted
}

// VisibleApplications 班次结束后只保留已录用的申请，其余状态已经无法再处理
func VisibleApplications(shift *domain.Shift, apps []*domain.Application, now time.Time) []*domain.Application {
	visible := make([]*domain.Application, 0, len(apps))
	past := Classify(shift.Window(), now) == PhasePast

	for _, app := range apps {
		if app.ShiftID != shift.ID {
			continue
		}
		if past && !isHired(app.Status) {
			continue
		}
		visible = append(visible, app)
	}

	return visible
}

type ShiftApplications struct {
	Shift        *domain.Shift         `json:"shift"`
	Phase        Phase                 `json:"phase"`
	SlotsLeft    int                   `json:"slotsLeft"`
	Applications []*domain.Application `json:"applications"`
}

// GroupVisibleApplications 按班次分组，过滤后没有任何可见申请的班次不返回
func GroupVisibleApplications(shifts []*domain.Shift, apps []*domain.Application, now time.Time) []ShiftApplications {
	groups := make([]ShiftApplications, 0, len(shifts))

	for _, shift := range shifts {
		visible := VisibleApplications(shift, apps, now)
		if len(visible) == 0 {
			continue
		}

		projected := make([]*domain.Application, len(visible))
		for i, app := range visible {
			projected[i] = ProjectApplicant(app)
		}

		groups = append(groups, ShiftApplications{
			Shift:        shift,
			Phase:        Classify(shift.Window(), now),
			SlotsLeft:    shift.SlotsLeft(),
			Applications: projected,
		})
	}

	return groups
}

// ContactVisible 只有录用之后企业才能看到员工的联系方式
func ContactVisible(app *domain.Application) bool {
	return isHired(app.Status)
}

// ProjectApplicant 返回一份副本，在联系方式不可见时抹掉邮箱和电话
func ProjectApplicant(app *domain.Application) *domain.Application {
	projected := *app
	if app.Worker != nil {
		worker := *app.Worker
		if !ContactVisible(app) {
			worker.Email = ""
			worker.Phone = ""
		}
		projected.Worker = &worker
	}
	return &projected
}

// CanBulkReject 返回可以被"全部拒绝"的申请，班次结束后为空
func CanBulkReject(shift *domain.Shift, apps []*domain.Application, now time.Time) []*domain.Application {
	pending := make([]*domain.Application, 0)
	if !IsActionable(shift.Window(), now) {
		return pending
	}

	for _, app := range apps {
		if app.ShiftID == shift.ID && app.Status == domain.ApplicationStatusPending {
			pending = append(pending, app)
		}
	}

	return pending
}

// validateApplicationTransition 在发出任何写操作之前检查时间窗口和状态
func validateApplicationTransition(shift *domain.Shift, app *domain.Application, to domain.ApplicationStatus, now time.Time) *Error {
	if app.ShiftID != shift.ID {
		return validationError("申请不属于该班次")
	}
	if !IsActionable(shift.Window(), now) {
		return windowClosedError("班次已结束，无法再处理申请")
	}
	if !CanTransition(app.Status, to) {
		return windowClosedError("申请当前状态为 " + string(app.Status) + "，无法变更为 " + string(to))
	}
	if to == domain.ApplicationStatusAccepted && shift.SlotsLeft() <= 0 {
		return validationError("该班次已没有空缺名额")
	}
	return nil
}
