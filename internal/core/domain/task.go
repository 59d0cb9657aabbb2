package domain

import "time"

// TaskStatus is the progress state of a firm task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is work a firm manager assigns to one of the firm's lawyers.
type Task struct {
	ID          string       `json:"id" bson:"id"`
	FirmID      string       `json:"firm_id" bson:"firm_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	AssignedTo  string       `json:"assigned_to" bson:"assigned_to"`
	AssignedBy  string       `json:"assigned_by" bson:"assigned_by"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	Status      TaskStatus   `json:"status" bson:"status"`
	DueDate     string       `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CaseID      string       `json:"case_id,omitempty" bson:"case_id,omitempty"`
	CaseName    string       `json:"case_name,omitempty" bson:"case_name,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	CompletedAt *time.Time   `json:"completed_at" bson:"completed_at"`
}

// SetStatus moves the task to status. CompletedAt is set exactly when the
// task becomes completed and cleared otherwise.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == TaskCompleted {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}
