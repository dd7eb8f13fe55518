package meeting

import (
	"time"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
)

// Meeting is a scheduled event owned by one account with a set of attendee
// accounts. Attendees always belong to the same owner as the meeting; the
// owning account is immutable after creation.
type Meeting struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	CreatedAt     time.Time         `json:"created_at"`
	Attendees     []account.Account `json:"attendees"`
	OwnerID       int64             `json:"-"`
}

// Detail is the expanded view of a meeting including its notes and the tasks
// due at it.
type Detail struct {
	Meeting
	Notes []note.Note `json:"notes"`
	Tasks []task.Task `json:"tasks"`
}
