package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
)

type applicationTransition func(ctx context.Context, shift *domain.Shift, app *domain.Application, now time.Time) error

// changeApplicationStatus 成功之后重新读取申请，返回的快照已经按隐私规则处理
func (h *Handler) changeApplicationStatus(w http.ResponseWriter, r *http.Request, apply applicationTransition, mailType domain.MailType, msg string) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)

	if err := apply(r.Context(), shift, app, h.now()); err != nil {
		h.engineError(w, r, err)
		return
	}

	h.publishMail(applicationMail(mailType, shift, app))

	updated, err := h.repository.GetApplicationByID(app.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, msg, staffing.ProjectApplicant(updated))
}

func (h *Handler) AcceptApplication(w http.ResponseWriter, r *http.Request) {
	h.changeApplicationStatus(w, r, h.engine.AcceptApplication, domain.MailApplicationAccepted, "已录用该员工")
}

func (h *Handler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	h.changeApplicationStatus(w, r, h.engine.RejectApplication, domain.MailApplicationRejected, "已拒绝该申请")
}

func (h *Handler) WaitlistApplication(w http.ResponseWriter, r *http.Request) {
	h.changeApplicationStatus(w, r, h.engine.WaitlistApplication, domain.MailApplicationWaitlist, "已将该申请加入候补")
}
