package utils

import (
	"testing"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidateShift(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	valid := func() *domain.Shift {
		return &domain.Shift{
			Title:          "仓库分拣",
			StartTime:      now.Add(24 * time.Hour),
			EndTime:        now.Add(32 * time.Hour),
			HourlyRate:     decimal.RequireFromString("32.50"),
			VacanciesTotal: 3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *domain.Shift)
		wantErr string
	}{
		{name: "valid", mutate: func(s *domain.Shift) {}},
		{name: "blank title", mutate: func(s *domain.Shift) { s.Title = "  " }, wantErr: "班次名称不能为空"},
		{name: "end before start", mutate: func(s *domain.Shift) { s.EndTime = s.StartTime }, wantErr: "班次的结束时间必须晚于开始时间"},
		{name: "too long", mutate: func(s *domain.Shift) { s.EndTime = s.StartTime.Add(25 * time.Hour) }, wantErr: "单个班次不能超过 24 小时"},
		{name: "already started", mutate: func(s *domain.Shift) { s.StartTime = now.Add(-time.Minute); s.EndTime = now.Add(time.Hour) }, wantErr: "班次的开始时间不能早于当前时间"},
		{name: "zero rate", mutate: func(s *domain.Shift) { s.HourlyRate = decimal.Zero }, wantErr: "时薪必须大于 0"},
		{name: "no vacancies", mutate: func(s *domain.Shift) { s.VacanciesTotal = 0 }, wantErr: "班次至少需要 1 个名额"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := valid()
			tt.mutate(shift)

			err := ValidateShift(shift, now)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateApprovedTime(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	tooLate := start.Add(30 * time.Hour)

	require.NoError(t, ValidateApprovedTime(&domain.Timesheet{}))
	require.NoError(t, ValidateApprovedTime(&domain.Timesheet{ManagerApprovedStart: &start, ManagerApprovedEnd: &end}))
	require.Error(t, ValidateApprovedTime(&domain.Timesheet{ManagerApprovedStart: &start}))
	require.Error(t, ValidateApprovedTime(&domain.Timesheet{ManagerApprovedStart: &end, ManagerApprovedEnd: &start}))
	require.Error(t, ValidateApprovedTime(&domain.Timesheet{ManagerApprovedStart: &start, ManagerApprovedEnd: &tooLate}))
}

func TestGenerateRandomShiftIsWellFormed(t *testing.T) {
	now := time.Now()
	for i := 0; i < 100; i++ {
		shift := GenerateRandomShift(1, now)
		require.True(t, shift.EndTime.After(shift.StartTime))
		require.True(t, shift.HourlyRate.IsPositive())
		require.GreaterOrEqual(t, shift.VacanciesTotal, int32(1))
	}
}

func TestGenerateRandomWorker(t *testing.T) {
	worker := GenerateRandomWorker("example.com")

	require.NotEmpty(t, worker.FullName)
	require.Regexp(t, `^[a-z]+[0-9]{1,3}@example\.com$`, worker.Email)
	require.Regexp(t, `^\+861[0-9]{10}$`, worker.Phone)
}

func TestGenerateRandomSubset(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	for i := 0; i < 50; i++ {
		subset := GenerateRandomSubset(ids)
		require.NotEmpty(t, subset)
		require.Subset(t, ids, subset)
	}
	require.Empty(t, GenerateRandomSubset([]int64{}))
	require.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}
