package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want ApplicationStatus
	}{
		{"pending", ApplicationStatusPending},
		{"  Accepted ", ApplicationStatusAccepted},
		{"HIRED", ApplicationStatusAccepted},
		{"waitlisted", ApplicationStatusWaitlist},
		{"waiting_list", ApplicationStatusWaitlist},
		{"approved", ApplicationStatusCompleted},
		{"done", ApplicationStatusCompleted},
		{"rejected", ApplicationStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseApplicationStatus(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseApplicationStatus("cancelled")
	require.Error(t, err)
}

func TestApplicationStatusScan(t *testing.T) {
	var status ApplicationStatus

	require.NoError(t, status.Scan([]byte("Waitlist")))
	require.Equal(t, ApplicationStatusWaitlist, status)

	require.NoError(t, status.Scan("hired"))
	require.Equal(t, ApplicationStatusAccepted, status)

	require.Error(t, status.Scan(42))
	require.Error(t, status.Scan("unknown"))
	require.Equal(t, ApplicationStatusAccepted, status)
}

func TestParseTimesheetStatus(t *testing.T) {
	got, err := ParseTimesheetStatus(" DISPUTED ")
	require.NoError(t, err)
	require.Equal(t, TimesheetStatusDisputed, got)

	var status TimesheetStatus
	require.NoError(t, status.Scan([]byte("paid")))
	require.Equal(t, TimesheetStatusPaid, status)

	_, err = ParseTimesheetStatus("hired")
	require.Error(t, err)
	require.Error(t, status.Scan(nil))
}

func TestShiftSlotsLeft(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	shift := &Shift{StartTime: start, EndTime: start.Add(8 * time.Hour), VacanciesTotal: 3, VacanciesTaken: 1}
	require.Equal(t, 2, shift.SlotsLeft())

	shift.VacanciesTaken = 3
	require.Equal(t, 0, shift.SlotsLeft())

	window := shift.Window()
	require.Equal(t, start, window.StartTime)
	require.Equal(t, start.Add(8*time.Hour), window.EndTime)
}
