package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const requestSelect = `SELECT r.id, r.type, r.item, r.status, r.request_date, r.notes,
	        r.family_id, r.linked_task_id, u.id, u.full_name, u.email, u.department
	 FROM requests r
	 JOIN users u ON u.id = r.requested_by`

func scanRequest(s rowScanner) (*model.Request, error) {
	r := &model.Request{}
	var linked sql.NullString
	err := s.Scan(&r.ID, &r.Type, &r.Item, &r.Status, &r.RequestDate, &r.Notes,
		&r.FamilyID, &linked, &r.RequestedBy.ID, &r.RequestedBy.FullName,
		&r.RequestedBy.Email, &r.RequestedBy.Department)
	if err != nil {
		return nil, err
	}
	r.LinkedTaskID = linked.String
	return r, nil
}

// CreateRequest inserts a new request.
func CreateRequest(ctx context.Context, db DBTX, r *model.Request) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO requests (id, type, item, requested_by, status, request_date, notes, family_id, linked_task_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Type, r.Item, r.RequestedBy.ID, r.Status, r.RequestDate, r.Notes, r.FamilyID,
		nullString(r.LinkedTaskID),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return nil
}

// GetRequest returns a request by ID.
func GetRequest(ctx context.Context, db DBTX, id string) (*model.Request, error) {
	r, err := scanRequest(db.QueryRowContext(ctx, requestSelect+` WHERE r.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting request: %w", err)
	}
	return r, nil
}

// ListRequests returns requests newest first. A non-empty requestedBy
// restricts the list to one requester.
func ListRequests(ctx context.Context, db DBTX, requestedBy string) ([]model.Request, error) {
	query := requestSelect
	var args []any
	if requestedBy != "" {
		query += ` WHERE r.requested_by = ?`
		args = append(args, requestedBy)
	}
	query += ` ORDER BY r.rowid DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	requests := []model.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

// UpdateRequestStatus sets a request's status.
func UpdateRequestStatus(ctx context.Context, db DBTX, id, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE requests SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}
	return requireRow(result, "request")
}

// LinkTask records the fulfillment task of a request and moves it to the
// given status.
func LinkTask(ctx context.Context, db DBTX, requestID, taskID, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE requests SET linked_task_id = ?, status = ? WHERE id = ?`,
		taskID, status, requestID,
	)
	if err != nil {
		return fmt.Errorf("linking task: %w", err)
	}
	return requireRow(result, "request")
}
