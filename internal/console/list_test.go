package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

func TestListControllerLoadPopulates(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	var gotFilter models.AttendanceFilter
	ctrl := NewListController(func(_ context.Context, f models.AttendanceFilter) ([]models.AttendanceRecord, error) {
		gotFilter = f
		return []models.AttendanceRecord{{EmployeeID: "EMP001", Date: "2024-05-01", Status: models.AttendanceStatusPresent}}, nil
	}, ListOptions{Now: func() time.Time { return now }})

	filter := models.AttendanceFilter{EmployeeID: "EMP001"}
	state, err := ctrl.Load(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, filter, gotFilter)
	assert.Equal(t, StatusReady, state.Status)
	assert.Len(t, state.Items, 1)
	assert.Equal(t, filter, state.Filter)
	assert.Equal(t, now, state.LoadedAt)
	assert.False(t, state.Empty())
}

func TestListControllerEmptyIsNotAnError(t *testing.T) {
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		return nil, nil
	}, ListOptions{})

	state, err := ctrl.Load(context.Background(), NoFilter{})

	require.NoError(t, err)
	assert.True(t, state.Empty())
	assert.False(t, state.Failed())
	assert.NotNil(t, state.Items)
}

func TestListControllerFailureKeepsPreviousItems(t *testing.T) {
	fail := false
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		if fail {
			return nil, appErrors.Upstream(500, "database offline", nil)
		}
		return []models.Employee{{EmployeeID: "EMP001"}}, nil
	}, ListOptions{Fallback: "Failed to load employees"})

	_, err := ctrl.Load(context.Background(), NoFilter{})
	require.NoError(t, err)

	fail = true
	state, err := ctrl.Load(context.Background(), NoFilter{})

	require.Error(t, err)
	assert.True(t, state.Failed())
	assert.Equal(t, "database offline", state.Err)
	assert.Equal(t, []models.Employee{{EmployeeID: "EMP001"}}, state.Items)
}

func TestListControllerFallbackMessage(t *testing.T) {
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, ListOptions{Fallback: "Failed to load employees"})

	state, err := ctrl.Load(context.Background(), NoFilter{})

	require.Error(t, err)
	assert.Equal(t, "Failed to load employees", state.Err)
}

func TestListControllerSuccessClearsError(t *testing.T) {
	fail := true
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []models.Employee{}, nil
	}, ListOptions{})

	_, _ = ctrl.Load(context.Background(), NoFilter{})
	fail = false
	state, err := ctrl.Load(context.Background(), NoFilter{})

	require.NoError(t, err)
	assert.Empty(t, state.Err)
	assert.Equal(t, StatusReady, state.Status)
}

func TestListControllerDiscardsSupersededLoad(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	ctrl := NewListController(func(ctx context.Context, f models.AttendanceFilter) ([]models.AttendanceRecord, error) {
		if f.EmployeeID == "slow" {
			close(slowStarted)
			<-releaseSlow
			return []models.AttendanceRecord{{EmployeeID: "slow"}}, nil
		}
		return []models.AttendanceRecord{{EmployeeID: "fast"}}, nil
	}, ListOptions{})

	type result struct {
		state ListState[models.AttendanceRecord, models.AttendanceFilter]
		err   error
	}
	done := make(chan result, 1)
	go func() {
		state, err := ctrl.Load(context.Background(), models.AttendanceFilter{EmployeeID: "slow"})
		done <- result{state, err}
	}()
	<-slowStarted

	fast, err := ctrl.Load(context.Background(), models.AttendanceFilter{EmployeeID: "fast"})
	require.NoError(t, err)
	assert.Equal(t, "fast", fast.Items[0].EmployeeID)

	close(releaseSlow)
	late := <-done

	assert.ErrorIs(t, late.err, appErrors.ErrSuperseded)
	current := ctrl.Snapshot()
	assert.Equal(t, "fast", current.Items[0].EmployeeID)
	assert.Equal(t, models.AttendanceFilter{EmployeeID: "fast"}, current.Filter)
	assert.Equal(t, StatusReady, current.Status)
}

func TestListControllerCancelsSupersededContext(t *testing.T) {
	started := make(chan struct{})
	canceled := make(chan error, 1)
	calls := 0
	ctrl := NewListController(func(ctx context.Context, _ NoFilter) ([]models.Employee, error) {
		calls++
		if calls == 1 {
			close(started)
			<-ctx.Done()
			canceled <- ctx.Err()
			return nil, ctx.Err()
		}
		return []models.Employee{}, nil
	}, ListOptions{})

	go func() { _, _ = ctrl.Load(context.Background(), NoFilter{}) }()
	<-started
	_, err := ctrl.Load(context.Background(), NoFilter{})
	require.NoError(t, err)

	select {
	case cerr := <-canceled:
		assert.ErrorIs(t, cerr, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	assert.False(t, ctrl.Snapshot().Failed())
}

func TestListControllerReloadUsesLastFilter(t *testing.T) {
	var filters []models.AttendanceFilter
	ctrl := NewListController(func(_ context.Context, f models.AttendanceFilter) ([]models.AttendanceRecord, error) {
		filters = append(filters, f)
		return nil, nil
	}, ListOptions{})

	filter := models.AttendanceFilter{DateFrom: "2024-05-01", DateTo: "2024-05-31"}
	_, _ = ctrl.Load(context.Background(), filter)
	_, _ = ctrl.Reload(context.Background())

	assert.Equal(t, []models.AttendanceFilter{filter, filter}, filters)
	assert.Equal(t, filter, ctrl.Filter())
}

func TestListControllerSnapshotIsACopy(t *testing.T) {
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		return []models.Employee{{EmployeeID: "EMP001"}}, nil
	}, ListOptions{})
	_, _ = ctrl.Load(context.Background(), NoFilter{})

	snap := ctrl.Snapshot()
	snap.Items[0].EmployeeID = "mutated"

	assert.Equal(t, "EMP001", ctrl.Snapshot().Items[0].EmployeeID)
}

func TestListControllerSupersededReturnsSettledState(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	releaseFast := make(chan struct{})
	fastStarted := make(chan struct{})
	calls := 0
	ctrl := NewListController(func(ctx context.Context, f models.AttendanceFilter) ([]models.AttendanceRecord, error) {
		switch f.EmployeeID {
		case "slow":
			close(slowStarted)
			<-releaseSlow
			return nil, ctx.Err()
		case "fast":
			close(fastStarted)
			<-releaseFast
			return []models.AttendanceRecord{{EmployeeID: "fast"}}, nil
		}
		calls++
		return []models.AttendanceRecord{{EmployeeID: "first"}}, nil
	}, ListOptions{})

	_, err := ctrl.Load(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)

	type result struct {
		state ListState[models.AttendanceRecord, models.AttendanceFilter]
		err   error
	}
	slow := make(chan result, 1)
	go func() {
		state, err := ctrl.Load(context.Background(), models.AttendanceFilter{EmployeeID: "slow"})
		slow <- result{state, err}
	}()
	<-slowStarted

	fast := make(chan result, 1)
	go func() {
		state, err := ctrl.Load(context.Background(), models.AttendanceFilter{EmployeeID: "fast"})
		fast <- result{state, err}
	}()
	<-fastStarted
	close(releaseSlow)

	late := <-slow
	assert.ErrorIs(t, late.err, appErrors.ErrSuperseded)
	assert.Equal(t, StatusReady, late.state.Status)
	assert.Equal(t, "first", late.state.Items[0].EmployeeID)
	assert.True(t, ctrl.Snapshot().Loading())
	assert.False(t, ctrl.Settled().Loading())

	close(releaseFast)
	settled, err := ctrl.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusReady, settled.Status)
	assert.Equal(t, "fast", settled.Items[0].EmployeeID)
	require.NoError(t, (<-fast).err)
	assert.Equal(t, 1, calls)
}

func TestListControllerAwaitWithoutLoadInFlight(t *testing.T) {
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		return []models.Employee{{EmployeeID: "EMP001"}}, nil
	}, ListOptions{})

	state, err := ctrl.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, state.Status)

	_, _ = ctrl.Load(context.Background(), NoFilter{})
	state, err = ctrl.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusReady, state.Status)
	assert.Len(t, state.Items, 1)
}

func TestListControllerAwaitHonoursContext(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ctrl := NewListController(func(context.Context, NoFilter) ([]models.Employee, error) {
		close(started)
		<-release
		return nil, nil
	}, ListOptions{})

	go func() { _, _ = ctrl.Load(context.Background(), NoFilter{}) }()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	state, err := ctrl.Await(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusIdle, state.Status)
	close(release)
}
