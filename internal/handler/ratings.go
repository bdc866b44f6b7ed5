package handler

import (
	"context"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/repository"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
)

// ratingRecorder 在确认或提出异议之前保存企业对员工的评分
type ratingRecorder struct {
	repository *repository.Repository
}

func (rr *ratingRecorder) BeforeApprove(ctx context.Context, ts *domain.Timesheet, review staffing.Review) error {
	return rr.record(ctx, ts, review)
}

func (rr *ratingRecorder) BeforeDispute(ctx context.Context, ts *domain.Timesheet, review staffing.Review) error {
	return rr.record(ctx, ts, review)
}

func (rr *ratingRecorder) record(ctx context.Context, ts *domain.Timesheet, review staffing.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return staffing.NewError(staffing.KindValidation, "请先为员工评分（1 到 5 分）")
	}

	return rr.repository.InsertWorkerRating(ctx, &domain.WorkerRating{
		TimesheetID: ts.ID,
		WorkerID:    ts.WorkerID,
		CompanyID:   ts.CompanyID,
		Rating:      review.Rating,
		Comment:     review.Comment,
	})
}
