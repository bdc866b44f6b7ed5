package seed

import (
	"errors"
	"log/slog"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/repository"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
	"github.com/MikolajSapek/staffer/backend/internal/utils"
	"github.com/shopspring/decimal"
)

// SeedApplications 为每个班次随机挑选一部分员工提交申请，已结束的班次直接按名额录用
func SeedApplications(r *repository.Repository, shifts []*domain.Shift, workers []*domain.Worker, now time.Time) int {
	workerIDs := make([]int64, len(workers))
	for i, worker := range workers {
		workerIDs[i] = worker.ID
	}

	cnt := 0
	for _, shift := range shifts {
		past := staffing.Classify(shift.Window(), now) == staffing.PhasePast
		slotsLeft := shift.SlotsLeft()

		for _, workerID := range utils.GenerateRandomSubset(workerIDs) {
			app := utils.GenerateRandomApplication(shift, workerID)

			var err error
			if past && slotsLeft > 0 {
				err = r.InsertHiredApplication(app)
				slotsLeft--
			} else {
				err = r.InsertApplication(app)
			}
			if err != nil {
				slog.Error("无法插入申请", "shift_id", shift.ID, "worker_id", workerID, "error", err)
				continue
			}

			cnt++
		}
	}

	return cnt
}

// SeedTimesheets 为已结束班次中已录用的员工生成工时单
func SeedTimesheets(r *repository.Repository, shifts []*domain.Shift, now time.Time) int {
	cnt := 0
	for _, shift := range shifts {
		if staffing.Classify(shift.Window(), now) != staffing.PhasePast {
			continue
		}

		apps, err := r.GetApplicationsByShiftID(shift.ID)
		if err != nil {
			slog.Error("无法获取班次的申请", "shift_id", shift.ID, "error", err)
			continue
		}

		for _, app := range apps {
			if app.Status != domain.ApplicationStatusAccepted {
				continue
			}

			ts := utils.GenerateRandomTimesheet(shift, app.WorkerID)
			if err := utils.ValidateApprovedTime(ts); err != nil {
				slog.Error("生成的工时单不合法", "shift_id", shift.ID, "error", err)
				continue
			}

			if err := r.InsertTimesheet(ts); err != nil {
				slog.Error("无法插入工时单", "shift_id", shift.ID, "worker_id", app.WorkerID, "error", err)
				continue
			}

			cnt++
		}
	}

	return cnt
}

// DemoScenario 是演示数据中各个实体的 ID
type DemoScenario struct {
	CompanyID     int64
	UpcomingShift int64
	PastShift     int64
	TimesheetID   int64
}

// SeedDemoScenario 插入一组固定的演示数据。
// 即将开始的班次 3 个名额已占用 1 个，A、B、C 分别在 10:00、09:00、11:00 申请，补满名额时应录用 B 和 A。
// 已结束的班次只展示已录用的 P2，P2 的工时单为 8 小时。
func SeedDemoScenario(r *repository.Repository, emailDomain string, now time.Time) (*DemoScenario, error) {
	company := &domain.Company{Name: "演示企业", Email: "demo" + utils.GenerateRandomID(0, 4) + "@" + emailDomain}
	if err := r.InsertCompany(company); err != nil {
		return nil, err
	}

	workers := map[string]*domain.Worker{}
	for _, key := range []string{"A", "B", "C", "X", "P1", "P2", "P3"} {
		worker := utils.GenerateRandomWorker(emailDomain)
		if err := r.InsertWorker(worker); err != nil {
			return nil, err
		}
		workers[key] = worker
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	yesterday := tomorrow.AddDate(0, 0, -2)

	upcoming := &domain.Shift{
		CompanyID:      company.ID,
		Title:          "展会接待",
		StartTime:      tomorrow.Add(9 * time.Hour),
		EndTime:        tomorrow.Add(17 * time.Hour),
		HourlyRate:     decimal.RequireFromString("35.50"),
		VacanciesTotal: 3,
	}
	past := &domain.Shift{
		CompanyID:      company.ID,
		Title:          "仓库分拣",
		StartTime:      yesterday.Add(9 * time.Hour),
		EndTime:        yesterday.Add(17 * time.Hour),
		HourlyRate:     decimal.RequireFromString("30.00"),
		VacanciesTotal: 2,
	}
	// 已结束的班次没法通过正常接口创建，这里直接写库
	for _, shift := range []*domain.Shift{upcoming, past} {
		if err := r.InsertShift(shift); err != nil {
			return nil, err
		}
	}

	appliedOn := tomorrow.AddDate(0, 0, -2)
	if err := r.InsertHiredApplication(&domain.Application{
		ShiftID:   upcoming.ID,
		WorkerID:  workers["X"].ID,
		AppliedAt: appliedOn.Add(8 * time.Hour),
	}); err != nil {
		return nil, err
	}
	for key, hour := range map[string]int{"A": 10, "B": 9, "C": 11} {
		if err := r.InsertApplication(&domain.Application{
			ShiftID:   upcoming.ID,
			WorkerID:  workers[key].ID,
			Status:    domain.ApplicationStatusPending,
			AppliedAt: appliedOn.Add(time.Duration(hour) * time.Hour),
		}); err != nil {
			return nil, err
		}
	}

	pastAppliedAt := past.StartTime.AddDate(0, 0, -3)
	for key, status := range map[string]domain.ApplicationStatus{
		"P1": domain.ApplicationStatusPending,
		"P3": domain.ApplicationStatusRejected,
	} {
		if err := r.InsertApplication(&domain.Application{
			ShiftID:   past.ID,
			WorkerID:  workers[key].ID,
			Status:    status,
			AppliedAt: pastAppliedAt,
		}); err != nil {
			return nil, err
		}
	}
	if err := r.InsertHiredApplication(&domain.Application{
		ShiftID:   past.ID,
		WorkerID:  workers["P2"].ID,
		AppliedAt: pastAppliedAt,
	}); err != nil {
		return nil, err
	}

	start, end := past.StartTime, past.StartTime.Add(8*time.Hour)
	ts := &domain.Timesheet{
		ShiftID:              past.ID,
		WorkerID:             workers["P2"].ID,
		ManagerApprovedStart: &start,
		ManagerApprovedEnd:   &end,
	}
	if err := utils.ValidateApprovedTime(ts); err != nil {
		return nil, errors.Join(errors.New("演示工时单不合法"), err)
	}
	if err := r.InsertTimesheet(ts); err != nil {
		return nil, err
	}

	return &DemoScenario{
		CompanyID:     company.ID,
		UpcomingShift: upcoming.ID,
		PastShift:     past.ID,
		TimesheetID:   ts.ID,
	}, nil
}
