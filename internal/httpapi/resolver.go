package httpapi

import (
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/metrics"
)

// instrumentedResolver counts resolutions per service kind.
type instrumentedResolver struct {
	inner mesh.Resolver
}

func (r instrumentedResolver) Resolve(m *mesh.Mesh, kind mesh.Kind) (any, error) {
	svc, err := r.inner.Resolve(m, kind)
	metrics.RecordServiceResolution(string(kind), err)
	return svc, err
}
