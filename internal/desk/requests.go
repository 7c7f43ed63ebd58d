package desk

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
)

// TaskDueDays is how far out a drafted task is due.
const TaskDueDays = 3

// ListRequests returns the requests viewer may see, newest first.
func (d *Desk) ListRequests(ctx context.Context, viewer *model.User) ([]model.Request, error) {
	requests, err := store.ListRequests(ctx, d.db, "")
	if err != nil {
		return nil, err
	}
	return VisibleRequests(requests, viewer), nil
}

// SubmitRequest files a request by requesterID for an item of a family.
func (d *Desk) SubmitRequest(ctx context.Context, requesterID, familyID, notes string) (*model.Request, error) {
	r := &model.Request{}
	err := d.write(ctx, func(tx *sql.Tx) error {
		requester, err := store.GetUser(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		if requester == nil {
			return notFound("user", requesterID)
		}
		fam, err := store.GetFamily(ctx, tx, familyID)
		if err != nil {
			return err
		}
		if fam == nil {
			return notFound("family", familyID)
		}

		r.ID = d.NewID("req")
		r.Type = model.RequestTypeSoftware
		if fam.AssetType == model.AssetTypeHardware {
			r.Type = model.RequestTypeHardware
		}
		r.Item = fam.Name
		r.RequestedBy = requester.Ref()
		r.Status = model.RequestPending
		r.RequestDate = d.today()
		r.Notes = notes
		r.FamilyID = fam.ID
		return store.CreateRequest(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// pendingRequest loads a request that must still be pending.
func pendingRequest(ctx context.Context, db store.DBTX, id string) (*model.Request, error) {
	r, err := store.GetRequest(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, notFound("request", id)
	}
	if r.Status != model.RequestPending {
		return nil, fmt.Errorf("%w: request %s is %s, not %s", ErrConflict, id, r.Status, model.RequestPending)
	}
	return r, nil
}

// ApproveRequest drafts the fulfillment task of a pending request. The
// request itself is unchanged until the draft is confirmed.
func (d *Desk) ApproveRequest(ctx context.Context, id string) (*model.Task, error) {
	r, err := pendingRequest(ctx, d.db, id)
	if err != nil {
		return nil, err
	}
	admin, err := d.FirstAdmin(ctx)
	if err != nil {
		return nil, err
	}

	draft := &model.Task{
		RequestID: r.ID,
		Title:     "Fulfill: " + r.Item,
		Status:    model.TaskTodo,
		Priority:  model.PriorityMedium,
		DueDate:   d.Now().UTC().AddDate(0, 0, TaskDueDays).Format(model.DateLayout),
		Description: fmt.Sprintf("Fulfillment required for %s: %s.\nRequested by: %s",
			r.Type, r.Item, r.RequestedBy.FullName),
	}
	if admin != nil {
		ref := admin.Ref()
		draft.AssignedTo = &ref
	}
	return draft, nil
}

// ConfirmTask creates the task for a pending request and moves the request
// to In Progress, linked to the task.
func (d *Desk) ConfirmTask(ctx context.Context, requestID string, draft model.Task) (*model.Task, error) {
	if draft.Priority == "" {
		draft.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(draft.Priority) {
		return nil, invalid("unknown priority %q", draft.Priority)
	}

	var taskID string
	err := d.write(ctx, func(tx *sql.Tx) error {
		r, err := pendingRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if r.LinkedTaskID != "" {
			return fmt.Errorf("%w: request %s already has task %s", ErrConflict, r.ID, r.LinkedTaskID)
		}

		t := draft
		t.ID = d.NewID("task")
		t.RequestID = r.ID
		t.Status = model.TaskTodo
		if t.Title == "" {
			t.Title = "Fulfill: " + r.Item
		}
		if t.AssignedTo != nil {
			refs, err := resolveRefs(ctx, tx, []model.UserRef{*t.AssignedTo})
			if err != nil {
				return err
			}
			t.AssignedTo = &refs[0]
		}
		if err := store.CreateTask(ctx, tx, &t); err != nil {
			return err
		}
		taskID = t.ID
		return store.LinkTask(ctx, tx, r.ID, t.ID, model.RequestInProgress)
	})
	if err != nil {
		return nil, err
	}
	return store.GetTask(ctx, d.db, taskID)
}

// RejectRequest closes a pending request.
func (d *Desk) RejectRequest(ctx context.Context, id string) (*model.Request, error) {
	err := d.write(ctx, func(tx *sql.Tx) error {
		if _, err := pendingRequest(ctx, tx, id); err != nil {
			return err
		}
		return store.UpdateRequestStatus(ctx, tx, id, model.RequestRejected)
	})
	if err != nil {
		return nil, err
	}
	return store.GetRequest(ctx, d.db, id)
}

// ListTasks returns every task, newest first.
func (d *Desk) ListTasks(ctx context.Context) ([]model.Task, error) {
	return store.ListTasks(ctx, d.db)
}

// UpdateTaskStatus moves a task between Todo, In Progress and Done. The
// linked request keeps its status.
func (d *Desk) UpdateTaskStatus(ctx context.Context, id, status string) (*model.Task, error) {
	if !model.ValidTaskStatus(status) {
		return nil, invalid("unknown task status %q", status)
	}
	err := d.write(ctx, func(tx *sql.Tx) error {
		return store.UpdateTaskStatus(ctx, tx, id, status)
	})
	if err != nil {
		return nil, err
	}
	return store.GetTask(ctx, d.db, id)
}
