package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TimesheetStatus string

const (
	TimesheetStatusPending  TimesheetStatus = "pending"
	TimesheetStatusApproved TimesheetStatus = "approved"
	TimesheetStatusDisputed TimesheetStatus = "disputed"
	TimesheetStatusPaid     TimesheetStatus = "paid"
	TimesheetStatusRejected TimesheetStatus = "rejected"
)

func ParseTimesheetStatus(raw string) (TimesheetStatus, error) {
	switch status := TimesheetStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case TimesheetStatusPending, TimesheetStatusApproved, TimesheetStatusDisputed, TimesheetStatusPaid, TimesheetStatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("未知的工时单状态 %q", raw)
}

func (s *TimesheetStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("无法将 %T 解析为工时单状态", src)
	}

	status, err := ParseTimesheetStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Timesheet struct {
	ID                   int64            `json:"id"`
	ShiftID              int64            `json:"shiftID"`
	CompanyID            int64            `json:"companyID"` // 与 ShiftTitle 一样来自 shifts 表
	ShiftTitle           string           `json:"shiftTitle"`
	WorkerID             int64            `json:"workerID"`
	Status               TimesheetStatus  `json:"status"`
	ManagerApprovedStart *time.Time       `json:"managerApprovedStart"`
	ManagerApprovedEnd   *time.Time       `json:"managerApprovedEnd"`
	ShiftStartTime       time.Time        `json:"shiftStartTime"` // 没有人工确认时间时的回退
	ShiftEndTime         time.Time        `json:"shiftEndTime"`
	TotalPay             *decimal.Decimal `json:"totalPay"`
	WasDisputed          bool             `json:"wasDisputed"`
	DisputeReason        *string          `json:"disputeReason"`
	RejectionReason      *string          `json:"rejectionReason"`
	CreatedAt            time.Time        `json:"createdAt"`
	Version              int32            `json:"-"`
}

type WorkerRating struct {
	ID          int64     `json:"id"`
	TimesheetID int64     `json:"timesheetID"`
	WorkerID    int64     `json:"workerID"`
	CompanyID   int64     `json:"companyID"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}
