package staffing

import (
	"testing"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestShiftFillIDsOldestFirst(t *testing.T) {
	shift := newShift(3, 1)
	apps := []*domain.Application{
		newApplication(1, domain.ApplicationStatusPending, at(10, 0)), // A
		newApplication(2, domain.ApplicationStatusPending, at(9, 0)),  // B
		newApplication(3, domain.ApplicationStatusPending, at(11, 0)), // C
	}

	require.Equal(t, []int64{2, 1}, ShiftFillIDs(shift, apps))
	// 纯函数，重复调用结果一致
	require.Equal(t, []int64{2, 1}, ShiftFillIDs(shift, apps))
}

func TestSelectForFill(t *testing.T) {
	apps := []*domain.Application{
		newApplication(1, domain.ApplicationStatusAccepted, at(8, 0)),
		newApplication(2, domain.ApplicationStatusPending, at(12, 0)),
		newApplication(3, domain.ApplicationStatusWaitlist, at(8, 30)),
		newApplication(4, domain.ApplicationStatusPending, at(9, 0)),
		newApplication(5, domain.ApplicationStatusPending, at(9, 0)),
		newApplication(6, domain.ApplicationStatusRejected, at(7, 0)),
	}

	tests := []struct {
		name      string
		slotsLeft int
		apps      []*domain.Application
		want      []int64
	}{
		{name: "no slots", slotsLeft: 0, apps: apps, want: []int64{}},
		{name: "negative slots", slotsLeft: -2, apps: apps, want: []int64{}},
		{name: "no applications", slotsLeft: 3, apps: nil, want: []int64{}},
		{name: "ties keep input order", slotsLeft: 2, apps: apps, want: []int64{4, 5}},
		{name: "more slots than pending", slotsLeft: 10, apps: apps, want: []int64{4, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SelectForFill(tt.slotsLeft, tt.apps))
		})
	}
}

func TestSelectForFillDoesNotReorderInput(t *testing.T) {
	apps := []*domain.Application{
		newApplication(1, domain.ApplicationStatusPending, at(10, 0)),
		newApplication(2, domain.ApplicationStatusPending, at(9, 0)),
	}

	SelectForFill(1, apps)

	require.Equal(t, []int64{1, 2}, ids(apps))
}
