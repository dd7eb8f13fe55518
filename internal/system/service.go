// Package system manages the lifecycle of long-running components.
package system

import "context"

// Service is a lifecycle-managed component. Components register with the
// Manager so startup and shutdown happen in a deterministic order.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
