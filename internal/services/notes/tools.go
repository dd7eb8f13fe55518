package notes

import (
	"context"
	"encoding/json"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
)

// Tools lists the note operations invocable by name.
func (s *Service) Tools() []mesh.Tool {
	return []mesh.Tool{
		{
			Name:        "create_note",
			Description: "Attach a note to an owned meeting",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					Content   string `json:"content"`
					MeetingID int64  `json:"meeting_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Create(ctx, p.Content, p.MeetingID)
			},
		},
		{
			Name:        "list_notes",
			Description: "List the caller's notes, optionally for one meeting",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					MeetingID *int64 `json:"meeting_id"`
				}
				if len(args) > 0 {
					if err := json.Unmarshal(args, &p); err != nil {
						return nil, errors.Validation(err)
					}
				}
				return s.List(ctx, p.MeetingID)
			},
		},
		{
			Name:        "get_note",
			Description: "Get one owned note by id",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					NoteID int64 `json:"note_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Get(ctx, p.NoteID)
			},
		},
	}
}
