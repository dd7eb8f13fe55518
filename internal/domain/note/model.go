package note

import "time"

// Note is a free-form text record attached to exactly one meeting.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	MeetingID int64     `json:"meeting_id"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int64     `json:"-"`
}
