package domain

import (
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusWaitlist ApplicationStatus = "waitlist"
	// 已经上完班（或工时已确认）的申请，展示上等同于 accepted
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// 上游对状态的大小写和叫法并不统一，统一在这里归一化
var applicationStatusAliases = map[string]ApplicationStatus{
	"pending":      ApplicationStatusPending,
	"accepted":     ApplicationStatusAccepted,
	"hired":        ApplicationStatusAccepted,
	"rejected":     ApplicationStatusRejected,
	"waitlist":     ApplicationStatusWaitlist,
	"waitlisted":   ApplicationStatusWaitlist,
	"waiting_list": ApplicationStatusWaitlist,
	"completed":    ApplicationStatusCompleted,
	"approved":     ApplicationStatusCompleted,
	"done":         ApplicationStatusCompleted,
}

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	status, ok := applicationStatusAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("未知的申请状态 %q", raw)
	}
	return status, nil
}

// Scan 让数据库中的原始字符串在读出时就完成归一化
func (s *ApplicationStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("无法将 %T 解析为申请状态", src)
	}

	status, err := ParseApplicationStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// WorkerContact 只有在申请被接受后才会对企业可见
type WorkerContact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Application struct {
	ID            int64             `json:"id"`
	ShiftID       int64             `json:"shiftID"`
	WorkerID      int64             `json:"workerID"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"appliedAt"`
	WorkerMessage *string           `json:"workerMessage"`
	Worker        *WorkerContact    `json:"worker,omitempty"`
	Version       int32             `json:"-"`
}
