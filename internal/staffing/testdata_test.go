package staffing

import (
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

var (
	shiftStart = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	shiftEnd   = time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
)

func newShift(total, taken int32) *domain.Shift {
	return &domain.Shift{
		ID:             1,
		CompanyID:      7,
		Title:          "仓库分拣",
		StartTime:      shiftStart,
		EndTime:        shiftEnd,
		VacanciesTotal: total,
		VacanciesTaken: taken,
		Status:         domain.ShiftStatusPublished,
	}
}

func newApplication(id int64, status domain.ApplicationStatus, appliedAt time.Time) *domain.Application {
	return &domain.Application{
		ID:        id,
		ShiftID:   1,
		WorkerID:  100 + id,
		Status:    status,
		AppliedAt: appliedAt,
		Worker: &domain.WorkerContact{
			FullName: "张伟",
			Email:    "zhangwei@example.com",
			Phone:    "+48123456789",
		},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2023, 12, 31, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func newTimesheet(status domain.TimesheetStatus) *domain.Timesheet {
	return &domain.Timesheet{
		ID:                   11,
		ShiftID:              1,
		WorkerID:             101,
		Status:               status,
		ManagerApprovedStart: ptr(shiftStart),
		ManagerApprovedEnd:   ptr(shiftStart.Add(8 * time.Hour)),
		ShiftStartTime:       shiftStart,
		ShiftEndTime:         shiftEnd,
	}
}
