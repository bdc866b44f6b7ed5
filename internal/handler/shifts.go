package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
	"github.com/MikolajSapek/staffer/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// shiftView 在班次之外附带当前阶段和剩余名额
type shiftView struct {
	*domain.Shift
	Phase     staffing.Phase `json:"phase"`
	SlotsLeft int            `json:"slotsLeft"`
}

func newShiftView(shift *domain.Shift, now time.Time) shiftView {
	return shiftView{
		Shift:     shift,
		Phase:     staffing.Classify(shift.Window(), now),
		SlotsLeft: shift.SlotsLeft(),
	}
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	companyID := r.Context().Value(CompanyIDCtxKey).(int64)

	shifts, err := h.repository.GetShiftsByCompanyID(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := h.now()
	views := make([]shiftView, len(shifts))
	for i, shift := range shifts {
		views[i] = newShiftView(shift, now)
	}

	h.successResponse(w, r, "获取班次列表成功", views)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string          `json:"title" validate:"required,max=100"`
		StartTime      time.Time       `json:"startTime" validate:"required"`
		EndTime        time.Time       `json:"endTime" validate:"required"`
		HourlyRate     decimal.Decimal `json:"hourlyRate"`
		VacanciesTotal int32           `json:"vacanciesTotal" validate:"required,min=1,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		CompanyID:      r.Context().Value(CompanyIDCtxKey).(int64),
		Title:          req.Title,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		HourlyRate:     req.HourlyRate,
		VacanciesTotal: req.VacanciesTotal,
	}

	if err := utils.ValidateShift(shift, h.now()); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.InsertShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_time_check":
				h.errorResponse(w, r, "班次的结束时间必须晚于开始时间")
			case "shifts_hourly_rate_check":
				h.errorResponse(w, r, "时薪必须大于 0")
			case "shifts_company_id_fkey":
				h.errorResponse(w, r, "企业不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建班次成功", newShiftView(shift, h.now()))
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	h.successResponse(w, r, "获取班次成功", newShiftView(shift, h.now()))
}

// shiftApplications 读取班次的申请，只返回当前可见的部分并隐藏未录用员工的联系方式
func (h *Handler) shiftApplications(shift *domain.Shift, now time.Time) (*staffing.ShiftApplications, error) {
	apps, err := h.repository.GetApplicationsByShiftID(shift.ID)
	if err != nil {
		return nil, err
	}

	visible := staffing.VisibleApplications(shift, apps, now)
	projected := make([]*domain.Application, len(visible))
	for i, app := range visible {
		projected[i] = staffing.ProjectApplicant(app)
	}

	return &staffing.ShiftApplications{
		Shift:        shift,
		Phase:        staffing.Classify(shift.Window(), now),
		SlotsLeft:    shift.SlotsLeft(),
		Applications: projected,
	}, nil
}

func (h *Handler) GetShiftApplications(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	group, err := h.shiftApplications(shift, h.now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次申请成功", group)
}

// refreshedShiftApplications 写操作成功之后重新读取班次和申请
func (h *Handler) refreshedShiftApplications(shiftID int64) (*staffing.ShiftApplications, error) {
	shift, err := h.repository.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}
	return h.shiftApplications(shift, h.now())
}

func (h *Handler) FillVacancies(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	apps, err := h.repository.GetApplicationsByShiftID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ids, err := h.engine.FillVacancies(r.Context(), shift, apps, h.now())
	if err != nil {
		h.engineError(w, r, err)
		return
	}

	accepted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		accepted[id] = true
	}
	for _, app := range apps {
		if accepted[app.ID] {
			h.publishMail(applicationMail(domain.MailApplicationAccepted, shift, app))
		}
	}

	group, err := h.refreshedShiftApplications(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已录用最早申请的员工", group)
}

func (h *Handler) RejectAllPending(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	apps, err := h.repository.GetApplicationsByShiftID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	rejected, err := h.engine.RejectAllPending(r.Context(), shift, apps, h.now())
	if err != nil {
		h.engineError(w, r, err)
		return
	}

	for _, app := range rejected {
		h.publishMail(applicationMail(domain.MailApplicationRejected, shift, app))
	}

	group, err := h.refreshedShiftApplications(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已拒绝全部待处理申请", group)
}

func (h *Handler) GetApplicants(w http.ResponseWriter, r *http.Request) {
	companyID := r.Context().Value(CompanyIDCtxKey).(int64)

	shifts, err := h.repository.GetShiftsByCompanyID(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	apps, err := h.repository.GetApplicationsByCompanyID(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请列表成功", staffing.GroupVisibleApplications(shifts, apps, h.now()))
}
