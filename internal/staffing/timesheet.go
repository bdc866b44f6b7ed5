package staffing

import (
	"math"
	"strings"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	nanosPerHour   = decimal.NewFromInt(int64(time.Hour))
)

// workedInterval 优先使用人工确认的时间，缺失时回退到班次本身的时间
func workedInterval(ts *domain.Timesheet) time.Duration {
	start := ts.ShiftStartTime
	if ts.ManagerApprovedStart != nil {
		start = *ts.ManagerApprovedStart
	}
	end := ts.ShiftEndTime
	if ts.ManagerApprovedEnd != nil {
		end = *ts.ManagerApprovedEnd
	}

	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// WorkedHours 返回保留两位小数的工作时长，时间缺失时为 0
func WorkedHours(ts *domain.Timesheet) decimal.Decimal {
	return decimal.NewFromInt(int64(workedInterval(ts))).DivRound(nanosPerHour, 2)
}

// CorrectedHours 在原有分钟数的基础上加上额外分钟数，结果只作为参数交给持久化层重新计算工资
func CorrectedHours(ts *domain.Timesheet, extraMinutes int) decimal.Decimal {
	return decimal.NewFromInt(correctedMinutes(ts, extraMinutes)).DivRound(minutesPerHour, 2)
}

func correctedMinutes(ts *domain.Timesheet, extraMinutes int) int64 {
	originalMinutes := int64(math.Round(workedInterval(ts).Minutes()))
	return originalMinutes + int64(extraMinutes)
}

// MaxExtraMinutes 单次加班修正最多追加一天
const MaxExtraMinutes = 24 * 60

type CorrectionPreview struct {
	WorkedHours    decimal.Decimal `json:"workedHours"`
	ExtraMinutes   int             `json:"extraMinutes"`
	CorrectedHours decimal.Decimal `json:"correctedHours"`
}

func PreviewCorrection(ts *domain.Timesheet, extraMinutes int) CorrectionPreview {
	return CorrectionPreview{
		WorkedHours:    WorkedHours(ts),
		ExtraMinutes:   extraMinutes,
		CorrectedHours: CorrectedHours(ts, extraMinutes),
	}
}

func ValidateApprove(ts *domain.Timesheet) error {
	if ts.Status != domain.TimesheetStatusPending {
		return windowClosedError("只有待审核的工时单可以确认")
	}
	return nil
}

func ValidateDispute(ts *domain.Timesheet, reason string) error {
	if ts.Status != domain.TimesheetStatusPending {
		return windowClosedError("只有待审核的工时单可以提出异议")
	}
	if strings.TrimSpace(reason) == "" {
		return validationError("异议原因不能为空")
	}
	return nil
}

// ValidateCorrection 有异议的工时单修正后会重新回到待审核状态
func ValidateCorrection(ts *domain.Timesheet, extraMinutes int) error {
	if ts.Status != domain.TimesheetStatusPending && ts.Status != domain.TimesheetStatusDisputed {
		return windowClosedError("工时单当前状态为 " + string(ts.Status) + "，无法修正工时")
	}
	if extraMinutes < 0 {
		return validationError("额外分钟数不能为负数")
	}
	if extraMinutes > MaxExtraMinutes {
		return validationError("额外分钟数不能超过 1440")
	}
	if correctedMinutes(ts, extraMinutes) <= 0 {
		return validationError("修正后的工作时长必须大于 0")
	}
	return nil
}

type ReviewOutcome string

const (
	ReviewApprove     ReviewOutcome = "approve"
	ReviewDispute     ReviewOutcome = "dispute"
	ReviewAddOvertime ReviewOutcome = "add_overtime"
)

// Review 是评分弹窗的结果
type Review struct {
	Outcome      ReviewOutcome
	Rating       int32
	Comment      string
	Reason       string
	ExtraMinutes int
}
