package meetings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
)

// Tools lists the meeting operations invocable by name.
func (s *Service) Tools() []mesh.Tool {
	return []mesh.Tool{
		{
			Name:        "create_meeting",
			Description: "Create a meeting with attendees drawn from owned accounts",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					Title         string    `json:"title"`
					Description   string    `json:"description"`
					ScheduledTime time.Time `json:"scheduled_time"`
					AttendeeIDs   []int64   `json:"attendee_ids"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Create(ctx, p.Title, p.Description, p.ScheduledTime, p.AttendeeIDs)
			},
		},
		{
			Name:        "list_meetings",
			Description: "List the caller's meetings",
			Invoke: func(ctx context.Context, _ json.RawMessage) (any, error) {
				return s.List(ctx)
			},
		},
		{
			Name:        "get_meeting",
			Description: "Get one owned meeting with its notes and tasks",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					MeetingID int64 `json:"meeting_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Get(ctx, p.MeetingID)
			},
		},
		{
			Name:        "update_meeting",
			Description: "Apply a partial update to one owned meeting",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					MeetingID int64 `json:"meeting_id"`
					UpdateParams
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Update(ctx, p.MeetingID, p.UpdateParams)
			},
		},
		{
			Name:        "delete_meeting",
			Description: "Delete one owned meeting together with its notes",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					MeetingID int64 `json:"meeting_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				if err := s.Delete(ctx, p.MeetingID); err != nil {
					return nil, err
				}
				return map[string]bool{"deleted": true}, nil
			},
		},
	}
}
