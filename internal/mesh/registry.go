package mesh

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Tool is a service operation exposed for generic invocation. Invoke decodes
// its own arguments, so callers can drive any tool from a raw JSON payload.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Invoke      func(ctx context.Context, args json.RawMessage) (any, error) `json:"-"`
}

// Definition registers a service kind with the process-wide table. Tools
// extracts the tool list from a constructed instance; it may be nil for
// services that expose no tools.
type Definition struct {
	Kind  Kind
	Name  string
	New   func(m *Mesh) (any, error)
	Tools func(svc any) []Tool
}

var (
	regMu       sync.RWMutex
	definitions = make(map[Kind]Definition)
)

// Register adds a service definition to the process-wide table. It is called
// once per kind at process start; registering a kind twice is a programming
// error.
func Register(def Definition) error {
	if def.Kind == "" || def.Name == "" || def.New == nil {
		return fmt.Errorf("mesh: definition requires kind, name, and constructor")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := definitions[def.Kind]; exists {
		return fmt.Errorf("mesh: service kind %q already registered", def.Kind)
	}
	definitions[def.Kind] = def
	return nil
}

// MustRegister is Register for wiring paths where a failure is fatal.
func MustRegister(def Definition) {
	if err := Register(def); err != nil {
		panic(err)
	}
}

func lookup(kind Kind) (Definition, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	def, ok := definitions[kind]
	return def, ok
}

func registered() []Definition {
	regMu.RLock()
	defer regMu.RUnlock()
	defs := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Tools resolves every registered service through the locator and returns
// the flat catalog of invocable operations, qualified as
// "{service_name}.{operation_name}". The list is recomputed on every call.
func (m *Mesh) Tools() ([]Tool, error) {
	var tools []Tool
	for _, def := range registered() {
		if def.Tools == nil {
			continue
		}
		svc, err := m.Service(def.Kind)
		if err != nil {
			return nil, err
		}
		for _, t := range def.Tools(svc) {
			t.Name = def.Name + "." + t.Name
			tools = append(tools, t)
		}
	}
	return tools, nil
}

// FindTool resolves the catalog and returns the tool with the given
// qualified name.
func (m *Mesh) FindTool(name string) (Tool, bool, error) {
	tools, err := m.Tools()
	if err != nil {
		return Tool{}, false, err
	}
	for _, t := range tools {
		if t.Name == name {
			return t, true, nil
		}
	}
	return Tool{}, false, nil
}
