package desk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/assetdesk/internal/model"
)

func TestRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	r, err := d.SubmitRequest(ctx, "user-5", "repo-mbp", "need a laptop")
	require.NoError(t, err)
	assert.Equal(t, model.RequestTypeHardware, r.Type)
	assert.Equal(t, "MacBook", r.Item)
	assert.Equal(t, model.RequestPending, r.Status)
	assert.Equal(t, "2026-05-04", r.RequestDate)
	assert.Equal(t, "Pravesh Kumar", r.RequestedBy.FullName)

	draft, err := d.ApproveRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fulfill: MacBook", draft.Title)
	assert.Equal(t, "Fulfillment required for Hardware: MacBook.\nRequested by: Pravesh Kumar", draft.Description)
	assert.Equal(t, model.PriorityMedium, draft.Priority)
	assert.Equal(t, "2026-05-07", draft.DueDate)
	require.NotNil(t, draft.AssignedTo)
	assert.Equal(t, "user-1", draft.AssignedTo.ID)

	// Approving alone leaves the request pending.
	list, err := d.ListRequests(ctx, admin(t, d))
	require.NoError(t, err)
	assert.Equal(t, r.ID, list[0].ID)
	assert.Equal(t, model.RequestPending, list[0].Status)

	draft.Priority = model.PriorityHigh
	task, err := d.ConfirmTask(ctx, r.ID, *draft)
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, task.Status)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, r.ID, task.RequestID)

	list, err = d.ListRequests(ctx, admin(t, d))
	require.NoError(t, err)
	assert.Equal(t, model.RequestInProgress, list[0].Status)
	assert.Equal(t, task.ID, list[0].LinkedTaskID)

	_, err = d.ConfirmTask(ctx, r.ID, *draft)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = d.RejectRequest(ctx, r.ID)
	assert.ErrorIs(t, err, ErrConflict)

	task, err = d.UpdateTaskStatus(ctx, task.ID, model.TaskDone)
	require.NoError(t, err)
	assert.Equal(t, model.TaskDone, task.Status)

	list, err = d.ListRequests(ctx, admin(t, d))
	require.NoError(t, err)
	assert.Equal(t, model.RequestInProgress, list[0].Status)
}

func TestSubmitRequestSoftware(t *testing.T) {
	d := seededDesk(t)
	r, err := d.SubmitRequest(context.Background(), "user-5", "repo-1", "")
	require.NoError(t, err)
	assert.Equal(t, model.RequestTypeSoftware, r.Type)
	assert.Equal(t, "ChatGPT", r.Item)
}

func TestSubmitRequestUnknownRefs(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	_, err := d.SubmitRequest(ctx, "user-5", "repo-nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.SubmitRequest(ctx, "user-999", "repo-1", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	r, err := d.RejectRequest(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, model.RequestRejected, r.Status)

	_, err = d.ApproveRequest(ctx, "req-1")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = d.RejectRequest(ctx, "req-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTransitionsFromNonPending(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	// req-2 is seeded as Approved.
	_, err := d.ApproveRequest(ctx, "req-2")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = d.ConfirmTask(ctx, "req-2", model.Task{})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = d.ApproveRequest(ctx, "req-none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmTaskValidates(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	_, err := d.ConfirmTask(ctx, "req-1", model.Task{Priority: "Urgent"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = d.ConfirmTask(ctx, "req-1", model.Task{AssignedTo: &model.UserRef{ID: "user-999"}})
	assert.ErrorIs(t, err, ErrInvalid)

	// Failed confirmations leave the request untouched.
	draft, err := d.ApproveRequest(ctx, "req-1")
	require.NoError(t, err)
	task, err := d.ConfirmTask(ctx, "req-1", model.Task{})
	require.NoError(t, err)
	assert.Equal(t, draft.Title, task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
}

func TestListRequestsScoped(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	all, err := d.ListRequests(ctx, admin(t, d))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := d.ListRequests(ctx, user(t, d, "user-3"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "req-1", mine[0].ID)

	none, err := d.ListRequests(ctx, user(t, d, "user-50"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateTaskStatusRejectsUnknown(t *testing.T) {
	d := seededDesk(t)
	_, err := d.UpdateTaskStatus(context.Background(), "task-1", "Blocked")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestListTasksNewestFirst(t *testing.T) {
	ctx := context.Background()
	d := seededDesk(t)

	r, err := d.SubmitRequest(ctx, "user-6", "repo-sha", "")
	require.NoError(t, err)
	first, err := d.ConfirmTask(ctx, "req-1", model.Task{})
	require.NoError(t, err)
	second, err := d.ConfirmTask(ctx, r.ID, model.Task{})
	require.NoError(t, err)

	tasks, err := d.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestRequestDateIsUTC(t *testing.T) {
	d := seededDesk(t)
	berlin := time.FixedZone("CEST", 2*60*60)
	d.Now = func() time.Time { return time.Date(2026, 5, 5, 1, 0, 0, 0, berlin) }

	r, err := d.SubmitRequest(context.Background(), "user-5", "repo-mbp", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04", r.RequestDate)
}
