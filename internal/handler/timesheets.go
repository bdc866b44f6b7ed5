package handler

import (
	"net/http"
	"strconv"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
	"github.com/shopspring/decimal"
)

type timesheetView struct {
	*domain.Timesheet
	WorkedHours decimal.Decimal `json:"workedHours"`
}

func newTimesheetView(ts *domain.Timesheet) timesheetView {
	return timesheetView{
		Timesheet:   ts,
		WorkedHours: staffing.WorkedHours(ts),
	}
}

func (h *Handler) GetTimesheets(w http.ResponseWriter, r *http.Request) {
	companyID := r.Context().Value(CompanyIDCtxKey).(int64)

	timesheets, err := h.repository.GetTimesheetsByCompanyID(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	views := make([]timesheetView, len(timesheets))
	for i, ts := range timesheets {
		views[i] = newTimesheetView(ts)
	}

	h.successResponse(w, r, "获取工时单列表成功", views)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	h.successResponse(w, r, "获取工时单成功", newTimesheetView(ts))
}

func (h *Handler) GetCorrectionPreview(w http.ResponseWriter, r *http.Request) {
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	extraMinutes := 0
	if raw := r.URL.Query().Get("extraMinutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > staffing.MaxExtraMinutes {
			h.errorResponse(w, r, "额外分钟数必须是 0 到 1440 之间的整数")
			return
		}
		extraMinutes = n
	}

	h.successResponse(w, r, "获取修正预览成功", staffing.PreviewCorrection(ts, extraMinutes))
}

type reviewRequest struct {
	Outcome      string `json:"outcome" validate:"required,oneof=approve dispute add_overtime"`
	Rating       int32  `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment      string `json:"comment" validate:"max=500"`
	Reason       string `json:"reason" validate:"max=1000"`
	ExtraMinutes int    `json:"extraMinutes" validate:"min=0,max=1440"`
}

func (req *reviewRequest) review() staffing.Review {
	return staffing.Review{
		Outcome:      staffing.ReviewOutcome(req.Outcome),
		Rating:       req.Rating,
		Comment:      req.Comment,
		Reason:       req.Reason,
		ExtraMinutes: req.ExtraMinutes,
	}
}

// reviewTimesheet 是确认、异议、修正和评分弹窗共用的流程
func (h *Handler) reviewTimesheet(w http.ResponseWriter, r *http.Request, req *reviewRequest) {
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	review := req.review()
	if err := h.engine.ReviewTimesheet(r.Context(), ts, review); err != nil {
		h.engineError(w, r, err)
		return
	}

	updated, err := h.repository.GetTimesheetByID(ts.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	hours := staffing.WorkedHours(updated).String()
	switch review.Outcome {
	case staffing.ReviewApprove:
		h.publishMail(h.timesheetMail(domain.MailTimesheetApproved, updated, hours))
		h.successResponse(w, r, "工时单已确认", newTimesheetView(updated))
	case staffing.ReviewDispute:
		h.publishMail(h.timesheetMail(domain.MailTimesheetDisputed, updated, hours))
		h.successResponse(w, r, "已对工时单提出异议", newTimesheetView(updated))
	case staffing.ReviewAddOvertime:
		h.publishMail(h.timesheetMail(domain.MailTimesheetCorrected, updated, hours))
		h.successResponse(w, r, "工时已修正", newTimesheetView(updated))
	}
}

func (h *Handler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int32  `json:"rating"`
		Comment string `json:"comment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.reviewTimesheet(w, r, &reviewRequest{
		Outcome: string(staffing.ReviewApprove),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
}

func (h *Handler) DisputeTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason  string `json:"reason"`
		Rating  int32  `json:"rating"`
		Comment string `json:"comment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.reviewTimesheet(w, r, &reviewRequest{
		Outcome: string(staffing.ReviewDispute),
		Rating:  req.Rating,
		Comment: req.Comment,
		Reason:  req.Reason,
	})
}

func (h *Handler) CorrectTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExtraMinutes int `json:"extraMinutes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.reviewTimesheet(w, r, &reviewRequest{
		Outcome:      string(staffing.ReviewAddOvertime),
		ExtraMinutes: req.ExtraMinutes,
	})
}

func (h *Handler) ReviewTimesheet(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.reviewTimesheet(w, r, &req)
}
