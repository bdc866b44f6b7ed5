package staffing

import (
	"testing"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	w := domain.ShiftWindow{StartTime: start, EndTime: end}

	tests := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{name: "before start", now: start.Add(-time.Minute), want: PhaseFuture},
		{name: "exactly start", now: start, want: PhaseOngoing},
		{name: "middle", now: start.Add(4 * time.Hour), want: PhaseOngoing},
		{name: "exactly end", now: end, want: PhaseOngoing},
		{name: "after end", now: end.Add(time.Nanosecond), want: PhasePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(w, tt.now))
			require.Equal(t, tt.want != PhasePast, IsActionable(w, tt.now))
		})
	}
}
