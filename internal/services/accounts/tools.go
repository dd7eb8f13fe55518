package accounts

import (
	"context"
	"encoding/json"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
)

// Tools lists the account operations invocable by name.
func (s *Service) Tools() []mesh.Tool {
	return []mesh.Tool{
		{
			Name:        "create_account",
			Description: "Create an account owned by the caller, or a self-owned root account when anonymous",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					Name  string `json:"name"`
					Email string `json:"email"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Create(ctx, p.Name, p.Email)
			},
		},
		{
			Name:        "list_accounts",
			Description: "List accounts owned by the caller",
			Invoke: func(ctx context.Context, _ json.RawMessage) (any, error) {
				return s.List(ctx)
			},
		},
		{
			Name:        "get_account",
			Description: "Get one owned account by id",
			Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					AccountID int64 `json:"account_id"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, errors.Validation(err)
				}
				return s.Get(ctx, p.AccountID)
			},
		},
	}
}
