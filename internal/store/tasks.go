package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

const taskSelect = `SELECT t.id, t.request_id, t.title, t.status, t.priority, t.due_date,
	        t.description, t.created_at, u.id, u.full_name, u.email, u.department
	 FROM tasks t
	 LEFT JOIN users u ON u.id = t.assigned_to`

func scanTask(s rowScanner) (*model.Task, error) {
	t := &model.Task{}
	var userID, userName, userEmail, userDept sql.NullString
	err := s.Scan(&t.ID, &t.RequestID, &t.Title, &t.Status, &t.Priority, &t.DueDate,
		&t.Description, &t.CreatedDate, &userID, &userName, &userEmail, &userDept)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		t.AssignedTo = &model.UserRef{
			ID:         userID.String,
			FullName:   userName.String,
			Email:      userEmail.String,
			Department: userDept.String,
		}
	}
	return t, nil
}

// CreateTask inserts a fulfillment task.
func CreateTask(ctx context.Context, db DBTX, t *model.Task) error {
	var assignee *string
	if t.AssignedTo != nil {
		assignee = &t.AssignedTo.ID
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (id, request_id, title, assigned_to, status, priority, due_date, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.RequestID, t.Title, assignee, t.Status, t.Priority, t.DueDate, t.Description,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// GetTask returns a task by ID.
func GetTask(ctx context.Context, db DBTX, id string) (*model.Task, error) {
	t, err := scanTask(db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// ListTasks returns all tasks newest first.
func ListTasks(ctx context.Context, db DBTX) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, taskSelect+` ORDER BY t.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus sets a task's status.
func UpdateTaskStatus(ctx context.Context, db DBTX, id, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE tasks SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return requireRow(result, "task")
}
