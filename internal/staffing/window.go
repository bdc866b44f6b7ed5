package staffing

import (
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

type Phase string

const (
	PhaseFuture  Phase = "future"
	PhaseOngoing Phase = "ongoing"
	PhasePast    Phase = "past"
)

// Classify 判断班次相对于 now 处于哪个阶段，开始和结束时刻本身都算进行中
func Classify(w domain.ShiftWindow, now time.Time) Phase {
	switch {
	case now.Before(w.StartTime):
		return PhaseFuture
	case now.After(w.EndTime):
		return PhasePast
	default:
		return PhaseOngoing
	}
}

// IsActionable 班次结束之前企业仍可以接受、拒绝或补满名额
func IsActionable(w domain.ShiftWindow, now time.Time) bool {
	return Classify(w, now) != PhasePast
}
