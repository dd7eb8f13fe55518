package task

import "time"

// Status is the closed set of task states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task is an action item due at a specific meeting. The meeting reference is
// validated at creation and reassignment but not enforced when the meeting is
// later deleted, so readers must tolerate dangling DueMeetingID values.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       Status    `json:"status"`
	DueMeetingID int64     `json:"due_meeting_id"`
	CreatedAt    time.Time `json:"created_at"`
	OwnerID      int64     `json:"-"`
}
