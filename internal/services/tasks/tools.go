package tasks

import (
	"context"
	"encoding/json"

	"github.com/agendalabs/meetingd/internal/domain/task"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
)

// Tools lists the task operations invocable by name.
func (s *Service) Tools() []mesh.Tool {
	return []mesh.Tool{
		{
			Name:        "create_task",
			Description: "Create a task due at an owned meeting",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					Title        string      `json:"title"`
					Description  string      `json:"description"`
					Status       task.Status `json:"status"`
					DueMeetingID int64       `json:"due_meeting_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Create(ctx, p.Title, p.Description, p.Status, p.DueMeetingID)
			},
		},
		{
			Name:        "list_tasks",
			Description: "List the caller's tasks, optionally filtered by due meeting and status",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					MeetingID *int64       `json:"meeting_id"`
					Status    *task.Status `json:"status"`
				}
				if len(args) > 0 {
					if err := json.Unmarshal(args, &p); err != nil {
						return nil, errors.Validation(err)
					}
				}
				return s.List(ctx, p.MeetingID, p.Status)
			},
		},
		{
			Name:        "get_task",
			Description: "Get one owned task by id",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					TaskID int64 `json:"task_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Get(ctx, p.TaskID)
			},
		},
		{
			Name:        "update_task",
			Description: "Apply a partial update to one owned task",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					TaskID int64 `json:"task_id"`
					UpdateParams
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Update(ctx, p.TaskID, p.UpdateParams)
			},
		},
		{
			Name:        "delete_task",
			Description: "Delete one owned task",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					TaskID int64 `json:"task_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				if err := s.Delete(ctx, p.TaskID); err != nil {
					return nil, err
				}
				return map[string]bool{"deleted": true}, nil
			},
		},
	}
}
