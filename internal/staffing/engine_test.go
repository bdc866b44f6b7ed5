package staffing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type collaboratorMock struct {
	mock.Mock
}

func (m *collaboratorMock) FillVacancies(ctx context.Context, shiftID int64, applicationIDs []int64) error {
	return m.Called(ctx, shiftID, applicationIDs).Error(0)
}

func (m *collaboratorMock) RejectAllPending(ctx context.Context, shiftID int64) error {
	return m.Called(ctx, shiftID).Error(0)
}

func (m *collaboratorMock) AcceptApplication(ctx context.Context, applicationID int64) error {
	return m.Called(ctx, applicationID).Error(0)
}

func (m *collaboratorMock) RejectApplication(ctx context.Context, applicationID int64) error {
	return m.Called(ctx, applicationID).Error(0)
}

func (m *collaboratorMock) WaitlistApplication(ctx context.Context, applicationID int64) error {
	return m.Called(ctx, applicationID).Error(0)
}

func (m *collaboratorMock) ApproveTimesheet(ctx context.Context, timesheetID int64) error {
	return m.Called(ctx, timesheetID).Error(0)
}

func (m *collaboratorMock) DisputeTimesheet(ctx context.Context, timesheetID int64, reason string) error {
	return m.Called(ctx, timesheetID, reason).Error(0)
}

func (m *collaboratorMock) CorrectTimesheetHours(ctx context.Context, timesheetID int64, hours decimal.Decimal) error {
	return m.Called(ctx, timesheetID, hours).Error(0)
}

type ratingHookMock struct {
	mock.Mock
}

func (m *ratingHookMock) BeforeApprove(ctx context.Context, ts *domain.Timesheet, review Review) error {
	return m.Called(ctx, ts, review).Error(0)
}

func (m *ratingHookMock) BeforeDispute(ctx context.Context, ts *domain.Timesheet, review Review) error {
	return m.Called(ctx, ts, review).Error(0)
}

func TestFillVacancies(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)

	shift := newShift(3, 1)
	apps := []*domain.Application{
		newApplication(1, domain.ApplicationStatusPending, at(10, 0)),
		newApplication(2, domain.ApplicationStatusPending, at(9, 0)),
		newApplication(3, domain.ApplicationStatusPending, at(11, 0)),
	}
	repo.On("FillVacancies", mock.Anything, int64(1), []int64{2, 1}).Return(nil).Once()

	ids, err := engine.FillVacancies(context.Background(), shift, apps, shiftStart.Add(-time.Hour))

	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids)
	// 快照保持不变，等待调用方重新读取
	require.Equal(t, domain.ApplicationStatusPending, apps[0].Status)
	require.Equal(t, int32(1), shift.VacanciesTaken)
	repo.AssertExpectations(t)
}

func TestFillVacanciesNothingToDo(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)

	full := newShift(2, 2)
	apps := []*domain.Application{newApplication(1, domain.ApplicationStatusPending, at(9, 0))}

	_, err := engine.FillVacancies(context.Background(), full, apps, shiftStart.Add(-time.Hour))

	require.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "FillVacancies", mock.Anything, mock.Anything, mock.Anything)
}

func TestFillVacanciesPastShift(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)

	apps := []*domain.Application{newApplication(1, domain.ApplicationStatusPending, at(9, 0))}
	_, err := engine.FillVacancies(context.Background(), newShift(2, 0), apps, shiftEnd.Add(time.Minute))

	require.ErrorIs(t, err, ErrWindowClosed)
	repo.AssertNotCalled(t, "FillVacancies", mock.Anything, mock.Anything, mock.Anything)
}

func TestFillVacanciesCollaboratorFailure(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)

	apps := []*domain.Application{newApplication(1, domain.ApplicationStatusPending, at(9, 0))}
	repo.On("FillVacancies", mock.Anything, int64(1), []int64{1}).Return(errors.New("班次名额已满")).Once()

	_, err := engine.FillVacancies(context.Background(), newShift(2, 0), apps, shiftStart)

	require.ErrorIs(t, err, ErrCollaboratorFailure)
	require.Equal(t, "班次名额已满", err.Error())
	require.Equal(t, KindCollaboratorFailure, KindOf(err))
}

func TestRejectAllPending(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)

	shift := newShift(3, 0)
	apps := []*domain.Application{
		newApplication(1, domain.ApplicationStatusPending, at(9, 0)),
		newApplication(2, domain.ApplicationStatusAccepted, at(9, 0)),
	}
	repo.On("RejectAllPending", mock.Anything, int64(1)).Return(nil).Once()

	rejected, err := engine.RejectAllPending(context.Background(), shift, apps, shiftStart)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(rejected))

	_, err = engine.RejectAllPending(context.Background(), shift, apps[1:], shiftStart)
	require.ErrorIs(t, err, ErrValidation)
	repo.AssertNumberOfCalls(t, "RejectAllPending", 1)
}

func TestApplicationTransitions(t *testing.T) {
	ctx := context.Background()
	now := shiftStart.Add(-time.Hour)

	t.Run("accept pending", func(t *testing.T) {
		repo := new(collaboratorMock)
		repo.On("AcceptApplication", mock.Anything, int64(1)).Return(nil).Once()

		err := New(repo, nil, nil).AcceptApplication(ctx, newShift(2, 0), newApplication(1, domain.ApplicationStatusPending, at(9, 0)), now)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("accept without slots", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).AcceptApplication(ctx, newShift(2, 2), newApplication(1, domain.ApplicationStatusWaitlist, at(9, 0)), now)
		require.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "AcceptApplication", mock.Anything, mock.Anything)
	})

	t.Run("waitlist then reject", func(t *testing.T) {
		repo := new(collaboratorMock)
		repo.On("RejectApplication", mock.Anything, int64(1)).Return(nil).Once()

		err := New(repo, nil, nil).RejectApplication(ctx, newShift(2, 0), newApplication(1, domain.ApplicationStatusWaitlist, at(9, 0)), now)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("waitlist a rejected application", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).WaitlistApplication(ctx, newShift(2, 0), newApplication(1, domain.ApplicationStatusRejected, at(9, 0)), now)
		require.ErrorIs(t, err, ErrWindowClosed)
		repo.AssertNotCalled(t, "WaitlistApplication", mock.Anything, mock.Anything)
	})

	t.Run("past shift", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).AcceptApplication(ctx, newShift(2, 0), newApplication(1, domain.ApplicationStatusPending, at(9, 0)), shiftEnd.Add(time.Hour))
		require.ErrorIs(t, err, ErrWindowClosed)
		repo.AssertNotCalled(t, "AcceptApplication", mock.Anything, mock.Anything)
	})

	t.Run("application of another shift", func(t *testing.T) {
		repo := new(collaboratorMock)
		app := newApplication(1, domain.ApplicationStatusPending, at(9, 0))
		app.ShiftID = 99

		err := New(repo, nil, nil).AcceptApplication(ctx, newShift(2, 0), app, now)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestApproveTimesheetTwiceIssuesOneCall(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)
	ts := newTimesheet(domain.TimesheetStatusPending)

	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("ApproveTimesheet", mock.Anything, int64(11)).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- engine.ApproveTimesheet(context.Background(), ts, Review{Outcome: ReviewApprove})
	}()

	<-started
	err := engine.ApproveTimesheet(context.Background(), ts, Review{Outcome: ReviewApprove})
	require.ErrorIs(t, err, ErrConcurrentOperation)

	close(release)
	require.NoError(t, <-done)
	repo.AssertNumberOfCalls(t, "ApproveTimesheet", 1)
}

func TestGuardIsReleasedAfterFailure(t *testing.T) {
	repo := new(collaboratorMock)
	guard := NewMemoryGuard()
	engine := New(repo, guard, nil)
	ts := newTimesheet(domain.TimesheetStatusPending)

	repo.On("ApproveTimesheet", mock.Anything, int64(11)).Return(errors.New("连接已断开")).Once()
	repo.On("ApproveTimesheet", mock.Anything, int64(11)).Return(nil).Once()

	require.ErrorIs(t, engine.ApproveTimesheet(context.Background(), ts, Review{}), ErrCollaboratorFailure)
	require.NoError(t, engine.ApproveTimesheet(context.Background(), ts, Review{}))
	repo.AssertExpectations(t)
}

func TestApproveTimesheetRatingHook(t *testing.T) {
	ctx := context.Background()
	review := Review{Outcome: ReviewApprove, Rating: 5}

	t.Run("hook runs before approval", func(t *testing.T) {
		repo := new(collaboratorMock)
		hook := new(ratingHookMock)
		ts := newTimesheet(domain.TimesheetStatusPending)

		hook.On("BeforeApprove", mock.Anything, ts, review).Return(nil).Once()
		repo.On("ApproveTimesheet", mock.Anything, int64(11)).Return(nil).Once()

		require.NoError(t, New(repo, nil, hook).ApproveTimesheet(ctx, ts, review))
		hook.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("hook rejection stops approval", func(t *testing.T) {
		repo := new(collaboratorMock)
		hook := new(ratingHookMock)
		ts := newTimesheet(domain.TimesheetStatusPending)

		hook.On("BeforeApprove", mock.Anything, ts, review).Return(NewError(KindValidation, "评分必须在 1 到 5 之间")).Once()

		err := New(repo, nil, hook).ApproveTimesheet(ctx, ts, review)
		require.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "ApproveTimesheet", mock.Anything, mock.Anything)
	})

	t.Run("unknown worker skips hook", func(t *testing.T) {
		repo := new(collaboratorMock)
		hook := new(ratingHookMock)
		ts := newTimesheet(domain.TimesheetStatusPending)
		ts.WorkerID = 0

		repo.On("ApproveTimesheet", mock.Anything, int64(11)).Return(nil).Once()

		require.NoError(t, New(repo, nil, hook).ApproveTimesheet(ctx, ts, review))
		hook.AssertNotCalled(t, "BeforeApprove", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDisputeTimesheet(t *testing.T) {
	ctx := context.Background()

	t.Run("whitespace reason", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).DisputeTimesheet(ctx, newTimesheet(domain.TimesheetStatusPending), Review{Reason: "   "})
		require.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "DisputeTimesheet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reason is trimmed", func(t *testing.T) {
		repo := new(collaboratorMock)
		repo.On("DisputeTimesheet", mock.Anything, int64(11), "迟到了二十分钟").Return(nil).Once()

		err := New(repo, nil, nil).DisputeTimesheet(ctx, newTimesheet(domain.TimesheetStatusPending), Review{Reason: "  迟到了二十分钟 "})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestCorrectTimesheet(t *testing.T) {
	repo := new(collaboratorMock)
	engine := New(repo, nil, nil)
	ts := newTimesheet(domain.TimesheetStatusPending)

	repo.On("CorrectTimesheetHours", mock.Anything, int64(11), mock.MatchedBy(func(h decimal.Decimal) bool {
		return h.Equal(decimal.RequireFromString("9.5"))
	})).Return(nil).Once()

	hours, err := engine.CorrectTimesheet(context.Background(), ts, 90)

	require.NoError(t, err)
	require.Equal(t, "9.5", hours.String())
	repo.AssertExpectations(t)
}

func TestReviewTimesheet(t *testing.T) {
	ctx := context.Background()

	t.Run("add overtime", func(t *testing.T) {
		repo := new(collaboratorMock)
		repo.On("CorrectTimesheetHours", mock.Anything, int64(11), mock.Anything).Return(nil).Once()

		err := New(repo, nil, nil).ReviewTimesheet(ctx, newTimesheet(domain.TimesheetStatusDisputed), Review{Outcome: ReviewAddOvertime, ExtraMinutes: 15})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("approve an approved timesheet", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).ReviewTimesheet(ctx, newTimesheet(domain.TimesheetStatusApproved), Review{Outcome: ReviewApprove})
		require.ErrorIs(t, err, ErrWindowClosed)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		repo := new(collaboratorMock)

		err := New(repo, nil, nil).ReviewTimesheet(ctx, newTimesheet(domain.TimesheetStatusPending), Review{Outcome: "skip"})
		require.ErrorIs(t, err, ErrValidation)
	})
}
