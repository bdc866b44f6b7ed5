package staffing

import (
	"slices"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

// SelectForFill 按申请时间先到先得，选出最多 slotsLeft 个待处理申请
func SelectForFill(slotsLeft int, apps []*domain.Application) []int64 {
	if slotsLeft <= 0 {
		return []int64{}
	}

	pending := make([]*domain.Application, 0, len(apps))
	for _, app := range apps {
		if app.Status == domain.ApplicationStatusPending {
			pending = append(pending, app)
		}
	}

	// 稳定排序，申请时间相同时保持传入顺序
	slices.SortStableFunc(pending, func(a, b *domain.Application) int {
		return a.AppliedAt.Compare(b.AppliedAt)
	})

	n := min(slotsLeft, len(pending))
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = pending[i].ID
	}

	return ids
}

// ShiftFillIDs 针对某个班次计算补满名额时应录用的申请
func ShiftFillIDs(shift *domain.Shift, apps []*domain.Application) []int64 {
	own := make([]*domain.Application, 0, len(apps))
	for _, app := range apps {
		if app.ShiftID == shift.ID {
			own = append(own, app)
		}
	}
	return SelectForFill(shift.SlotsLeft(), own)
}
