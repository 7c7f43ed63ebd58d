package model

import "time"

// Request is a user's request for a hardware or software item.
type Request struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Item         string  `json:"item"`
	RequestedBy  UserRef `json:"requestedBy"`
	Status       string  `json:"status"`
	RequestDate  string  `json:"requestDate"`
	Notes        string  `json:"notes"`
	FamilyID     string  `json:"familyId"`
	LinkedTaskID string  `json:"linkedTaskId,omitempty"`
}

// Request types.
const (
	RequestTypeHardware = "Hardware"
	RequestTypeSoftware = "Software"
)

// Request statuses.
const (
	RequestPending    = "Pending"
	RequestApproved   = "Approved"
	RequestRejected   = "Rejected"
	RequestFulfilled  = "Fulfilled"
	RequestInProgress = "In Progress"
)

// Task is the fulfillment work created when a request is approved.
type Task struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId"`
	Title       string    `json:"title"`
	AssignedTo  *UserRef  `json:"assignedTo"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"dueDate"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
}

// Task statuses.
const (
	TaskTodo       = "Todo"
	TaskInProgress = "In Progress"
	TaskDone       = "Done"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

// Task priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Vendor is a supplier reference.
type Vendor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
}
