package mesh

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/storage"
)

type widget struct {
	hits int
}

func newTestMesh() *Mesh {
	return New(nil, storage.Stores{}, nil, nil)
}

func TestLocalResolverUnknownKind(t *testing.T) {
	m := newTestMesh()

	_, err := m.Service(Kind("mesh-test-missing"))
	if err == nil {
		t.Fatalf("expected error for unregistered kind")
	}
	if errors.KindOf(err) != errors.KindConstruction {
		t.Fatalf("expected construction failure, got %v", err)
	}
}

func TestResolutionIsCachedPerMesh(t *testing.T) {
	kind := Kind("mesh-test-cached")
	MustRegister(Definition{
		Kind: kind,
		Name: "cached-widgets",
		New:  func(m *Mesh) (any, error) { return &widget{}, nil },
	})

	m := newTestMesh()
	first, err := m.Service(kind)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := m.Service(kind)
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same instance within one mesh")
	}

	other, err := newTestMesh().Service(kind)
	if err != nil {
		t.Fatalf("resolve on second mesh: %v", err)
	}
	if other == first {
		t.Fatalf("expected a fresh instance per mesh")
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(m *Mesh, kind Kind) (any, error) {
	return nil, errors.ConstructionFailure(ErrNoResolvers)
}

func TestCompositeFallsThroughToNextResolver(t *testing.T) {
	kind := Kind("mesh-test-fallback")
	MustRegister(Definition{
		Kind: kind,
		Name: "fallback-widgets",
		New:  func(m *Mesh) (any, error) { return &widget{}, nil },
	})

	m := New(nil, storage.Stores{}, nil, Composite{failingResolver{}, Local{}})
	if _, err := m.Service(kind); err != nil {
		t.Fatalf("expected fallback to local resolver, got %v", err)
	}
}

func TestEmptyCompositeFails(t *testing.T) {
	m := New(nil, storage.Stores{}, nil, Composite{})

	_, err := m.Service(Kind("mesh-test-anything"))
	if err == nil {
		t.Fatalf("expected error from empty composite")
	}
	if errors.KindOf(err) != errors.KindConstruction {
		t.Fatalf("expected construction failure, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	def := Definition{
		Kind: Kind("mesh-test-dup"),
		Name: "dup-widgets",
		New:  func(m *Mesh) (any, error) { return &widget{}, nil },
	}
	if err := Register(def); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(def); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestToolsAreQualifiedByServiceName(t *testing.T) {
	kind := Kind("mesh-test-tools")
	MustRegister(Definition{
		Kind: kind,
		Name: "gadgets",
		New:  func(m *Mesh) (any, error) { return &widget{}, nil },
		Tools: func(svc any) []Tool {
			w := svc.(*widget)
			return []Tool{{
				Name:        "ping",
				Description: "bump the hit counter",
				Invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
					w.hits++
					return w.hits, nil
				},
			}}
		},
	})

	m := newTestMesh()
	tools, err := m.Tools()
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	found := false
	for _, tool := range tools {
		if tool.Name == "gadgets.ping" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected gadgets.ping in catalog, got %v", tools)
	}

	tool, ok, err := m.FindTool("gadgets.ping")
	if err != nil || !ok {
		t.Fatalf("find tool: ok=%v err=%v", ok, err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out.(int) != 1 {
		t.Fatalf("expected hit counter 1, got %v", out)
	}

	// Invocation went through the cached instance bound to this mesh.
	svc, err := m.Service(kind)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if svc.(*widget).hits != 1 {
		t.Fatalf("tool did not operate on the mesh-scoped instance")
	}
}
