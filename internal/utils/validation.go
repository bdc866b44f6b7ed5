package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

const maxShiftDuration = 24 * time.Hour

func ValidateShift(shift *domain.Shift, now time.Time) error {
	if strings.TrimSpace(shift.Title) == "" {
		return errors.New("班次名称不能为空")
	}

	if !shift.EndTime.After(shift.StartTime) {
		return errors.New("班次的结束时间必须晚于开始时间")
	}

	if shift.EndTime.Sub(shift.StartTime) > maxShiftDuration {
		return fmt.Errorf("单个班次不能超过 %d 小时", int(maxShiftDuration.Hours()))
	}

	if shift.StartTime.Before(now) {
		return errors.New("班次的开始时间不能早于当前时间")
	}

	if !shift.HourlyRate.IsPositive() {
		return errors.New("时薪必须大于 0")
	}

	if shift.VacanciesTotal < 1 {
		return errors.New("班次至少需要 1 个名额")
	}

	return nil
}

// ValidateApprovedTime 检查人工确认的上下班时间，两者都为空表示沿用班次时间
func ValidateApprovedTime(ts *domain.Timesheet) error {
	if (ts.ManagerApprovedStart == nil) != (ts.ManagerApprovedEnd == nil) {
		return errors.New("确认的上班时间和下班时间必须同时填写")
	}
	if ts.ManagerApprovedStart == nil {
		return nil
	}

	if !ts.ManagerApprovedEnd.After(*ts.ManagerApprovedStart) {
		return errors.New("确认的下班时间必须晚于上班时间")
	}

	if ts.ManagerApprovedEnd.Sub(*ts.ManagerApprovedStart) > maxShiftDuration {
		return fmt.Errorf("确认的工作时长不能超过 %d 小时", int(maxShiftDuration.Hours()))
	}

	return nil
}
