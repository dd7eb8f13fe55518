// Package services wires the domain services into the mesh's process-wide
// definition table.
package services

import (
	"sync"

	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/services/accounts"
	"github.com/agendalabs/meetingd/internal/services/meetings"
	"github.com/agendalabs/meetingd/internal/services/notes"
	"github.com/agendalabs/meetingd/internal/services/tasks"
)

var registerOnce sync.Once

// Register adds every domain service to the mesh definition table. It is
// safe to call from multiple entry points; registration happens once per
// process.
func Register() {
	registerOnce.Do(func() {
		mesh.MustRegister(mesh.Definition{
			Kind: accounts.Kind,
			Name: "accounts",
			New:  func(m *mesh.Mesh) (any, error) { return accounts.New(m), nil },
			Tools: func(svc any) []mesh.Tool {
				return svc.(*accounts.Service).Tools()
			},
		})
		mesh.MustRegister(mesh.Definition{
			Kind: meetings.Kind,
			Name: "meetings",
			New:  func(m *mesh.Mesh) (any, error) { return meetings.New(m), nil },
			Tools: func(svc any) []mesh.Tool {
				return svc.(*meetings.Service).Tools()
			},
		})
		mesh.MustRegister(mesh.Definition{
			Kind: notes.Kind,
			Name: "notes",
			New:  func(m *mesh.Mesh) (any, error) { return notes.New(m), nil },
			Tools: func(svc any) []mesh.Tool {
				return svc.(*notes.Service).Tools()
			},
		})
		mesh.MustRegister(mesh.Definition{
			Kind: tasks.Kind,
			Name: "tasks",
			New:  func(m *mesh.Mesh) (any, error) { return tasks.New(m), nil },
			Tools: func(svc any) []mesh.Tool {
				return svc.(*tasks.Service).Tools()
			},
		})
	})
}
